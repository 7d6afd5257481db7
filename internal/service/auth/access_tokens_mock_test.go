package auth

import (
	"sync"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ accessTokens = &accessTokensMock{}

type accessTokensMock struct {
	IssueAccessFunc func(u *domain.User) (string, time.Time, error)
	ParseAccessFunc func(token string) (auth.Claims, error)

	calls struct {
		IssueAccess []struct {
			U *domain.User
		}
		ParseAccess []struct {
			Token string
		}
	}
	lockIssueAccess sync.RWMutex
	lockParseAccess sync.RWMutex
}

func (mock *accessTokensMock) IssueAccess(u *domain.User) (string, time.Time, error) {
	if mock.IssueAccessFunc == nil {
		panic("accessTokensMock.IssueAccessFunc: method is nil but accessTokens.IssueAccess was just called")
	}
	callInfo := struct {
		U *domain.User
	}{
		U: u,
	}
	mock.lockIssueAccess.Lock()
	mock.calls.IssueAccess = append(mock.calls.IssueAccess, callInfo)
	mock.lockIssueAccess.Unlock()
	return mock.IssueAccessFunc(u)
}

func (mock *accessTokensMock) IssueAccessCalls() []struct {
	U *domain.User
} {
	mock.lockIssueAccess.RLock()
	calls := mock.calls.IssueAccess
	mock.lockIssueAccess.RUnlock()
	return calls
}

func (mock *accessTokensMock) ParseAccess(token string) (auth.Claims, error) {
	if mock.ParseAccessFunc == nil {
		panic("accessTokensMock.ParseAccessFunc: method is nil but accessTokens.ParseAccess was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockParseAccess.Lock()
	mock.calls.ParseAccess = append(mock.calls.ParseAccess, callInfo)
	mock.lockParseAccess.Unlock()
	return mock.ParseAccessFunc(token)
}

func (mock *accessTokensMock) ParseAccessCalls() []struct {
	Token string
} {
	mock.lockParseAccess.RLock()
	calls := mock.calls.ParseAccess
	mock.lockParseAccess.RUnlock()
	return calls
}
