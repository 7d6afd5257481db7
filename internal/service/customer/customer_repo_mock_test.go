package customer

import (
	"context"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var _ customerRepo = &customerRepoMock{}

type customerRepoMock struct {
	GetFunc             func(ctx context.Context, code string) (*domain.Customer, error)
	GetForUpdateFunc    func(ctx context.Context, code string) (*domain.Customer, error)
	ListAddressesFunc   func(ctx context.Context, code string) ([]domain.CustomerAddress, error)
	NamesByCodesFunc    func(ctx context.Context, codes []string) (map[string]string, error)
	SearchFunc          func(ctx context.Context, query string, limit int) ([]domain.Customer, error)
	UpdateVersionedFunc func(ctx context.Context, c *domain.Customer, expected int64) (*domain.Customer, error)

	calls struct {
		Get []struct {
			Ctx  context.Context
			Code string
		}
		GetForUpdate []struct {
			Ctx  context.Context
			Code string
		}
		ListAddresses []struct {
			Ctx  context.Context
			Code string
		}
		NamesByCodes []struct {
			Ctx   context.Context
			Codes []string
		}
		Search []struct {
			Ctx   context.Context
			Query string
			Limit int
		}
		UpdateVersioned []struct {
			Ctx      context.Context
			C        *domain.Customer
			Expected int64
		}
	}
	lockGet             sync.RWMutex
	lockGetForUpdate    sync.RWMutex
	lockListAddresses   sync.RWMutex
	lockNamesByCodes    sync.RWMutex
	lockSearch          sync.RWMutex
	lockUpdateVersioned sync.RWMutex
}

func (mock *customerRepoMock) Get(ctx context.Context, code string) (*domain.Customer, error) {
	if mock.GetFunc == nil {
		panic("customerRepoMock.GetFunc: method is nil but customerRepo.Get was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, code)
}

func (mock *customerRepoMock) GetCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *customerRepoMock) GetForUpdate(ctx context.Context, code string) (*domain.Customer, error) {
	if mock.GetForUpdateFunc == nil {
		panic("customerRepoMock.GetForUpdateFunc: method is nil but customerRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, code)
}

func (mock *customerRepoMock) GetForUpdateCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *customerRepoMock) ListAddresses(ctx context.Context, code string) ([]domain.CustomerAddress, error) {
	if mock.ListAddressesFunc == nil {
		panic("customerRepoMock.ListAddressesFunc: method is nil but customerRepo.ListAddresses was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockListAddresses.Lock()
	mock.calls.ListAddresses = append(mock.calls.ListAddresses, callInfo)
	mock.lockListAddresses.Unlock()
	return mock.ListAddressesFunc(ctx, code)
}

func (mock *customerRepoMock) ListAddressesCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockListAddresses.RLock()
	calls := mock.calls.ListAddresses
	mock.lockListAddresses.RUnlock()
	return calls
}

func (mock *customerRepoMock) NamesByCodes(ctx context.Context, codes []string) (map[string]string, error) {
	if mock.NamesByCodesFunc == nil {
		panic("customerRepoMock.NamesByCodesFunc: method is nil but customerRepo.NamesByCodes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Codes []string
	}{
		Ctx:   ctx,
		Codes: codes,
	}
	mock.lockNamesByCodes.Lock()
	mock.calls.NamesByCodes = append(mock.calls.NamesByCodes, callInfo)
	mock.lockNamesByCodes.Unlock()
	return mock.NamesByCodesFunc(ctx, codes)
}

func (mock *customerRepoMock) NamesByCodesCalls() []struct {
	Ctx   context.Context
	Codes []string
} {
	mock.lockNamesByCodes.RLock()
	calls := mock.calls.NamesByCodes
	mock.lockNamesByCodes.RUnlock()
	return calls
}

func (mock *customerRepoMock) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	if mock.SearchFunc == nil {
		panic("customerRepoMock.SearchFunc: method is nil but customerRepo.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
		Limit int
	}{
		Ctx:   ctx,
		Query: query,
		Limit: limit,
	}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, query, limit)
}

func (mock *customerRepoMock) SearchCalls() []struct {
	Ctx   context.Context
	Query string
	Limit int
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

func (mock *customerRepoMock) UpdateVersioned(ctx context.Context, c *domain.Customer, expected int64) (*domain.Customer, error) {
	if mock.UpdateVersionedFunc == nil {
		panic("customerRepoMock.UpdateVersionedFunc: method is nil but customerRepo.UpdateVersioned was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		C        *domain.Customer
		Expected int64
	}{
		Ctx:      ctx,
		C:        c,
		Expected: expected,
	}
	mock.lockUpdateVersioned.Lock()
	mock.calls.UpdateVersioned = append(mock.calls.UpdateVersioned, callInfo)
	mock.lockUpdateVersioned.Unlock()
	return mock.UpdateVersionedFunc(ctx, c, expected)
}

func (mock *customerRepoMock) UpdateVersionedCalls() []struct {
	Ctx      context.Context
	C        *domain.Customer
	Expected int64
} {
	mock.lockUpdateVersioned.RLock()
	calls := mock.calls.UpdateVersioned
	mock.lockUpdateVersioned.RUnlock()
	return calls
}
