package mikro

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	mssql "github.com/microsoft/go-mssqldb"
)

// msql renders SQL Server named ordinal placeholders (@p1, @p2, ...).
var msql = sq.StatementBuilder.PlaceholderFormat(sq.AtP)

// DefaultLimit caps interactive (non-sync) listings.
const DefaultLimit = 500

// ---------------------------------------------------------------------------
// CARI_HESAPLAR
// ---------------------------------------------------------------------------

var customerColumns = []string{
	"cari_kod",
	"cari_unvan1",
	"cari_unvan2",
	"cari_vdaire_adi",
	"cari_vdaire_no",
	"cari_CepTel",
	"cari_EMail",
	"ISNULL(adr_il, '') AS adr_il",
	"ISNULL(adr_ilce, '') AS adr_ilce",
	"cari_lastup_date",
}

func customerBase() sq.SelectBuilder {
	return msql.Select(customerColumns...).
		From("CARI_HESAPLAR WITH (NOLOCK)").
		LeftJoin("CARI_HESAP_ADRESLERI WITH (NOLOCK) ON adr_cari_kod = cari_kod AND adr_adres_no = cari_fatura_adres_no")
}

// customersQuery lists customers, matching search against code and title.
func customersQuery(search string, limit int) sq.SelectBuilder {
	b := customerBase().Options(top(limit)).OrderBy("cari_kod")
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		b = b.Where(sq.Or{
			sq.Expr("cari_kod LIKE ? ESCAPE '\\'", pattern),
			sq.Expr("cari_unvan1 LIKE ? ESCAPE '\\'", pattern),
		})
	}
	return b
}

func customerQuery(code string) sq.SelectBuilder {
	return customerBase().Where(sq.Eq{"cari_kod": code})
}

func customersAfterQuery(after *time.Time) sq.SelectBuilder {
	return afterFilter(customerBase(), "cari_lastup_date", after).OrderBy("cari_lastup_date", "cari_kod")
}

// ---------------------------------------------------------------------------
// CARI_HESAP_ADRESLERI
// ---------------------------------------------------------------------------

var addressColumns = []string{
	"adr_cari_kod",
	"adr_adres_no",
	"adr_cadde",
	"adr_mahalle",
	"adr_ilce",
	"adr_il",
	"adr_tel_bolge_kodu",
	"adr_tel_no1",
	"adr_lastup_date",
}

func addressBase() sq.SelectBuilder {
	return msql.Select(addressColumns...).From("CARI_HESAP_ADRESLERI WITH (NOLOCK)")
}

func addressesQuery(customerCode string, limit int) sq.SelectBuilder {
	b := addressBase().Options(top(limit)).OrderBy("adr_cari_kod", "adr_adres_no")
	if customerCode != "" {
		b = b.Where(sq.Eq{"adr_cari_kod": customerCode})
	}
	return b
}

func addressesAfterQuery(after *time.Time) sq.SelectBuilder {
	return afterFilter(addressBase(), "adr_lastup_date", after).OrderBy("adr_lastup_date", "adr_cari_kod", "adr_adres_no")
}

// ---------------------------------------------------------------------------
// CARI_HESAP_HAREKETLERI
// ---------------------------------------------------------------------------

var movementColumns = []string{
	"cha_kod",
	"cha_tarihi",
	"cha_evrakno_seri",
	"cha_evrakno_sira",
	"cha_tip",
	"cha_cinsi",
	"cha_meblag",
	"cha_aciklama",
	"cha_lastup_date",
}

func movementBase() sq.SelectBuilder {
	return msql.Select(movementColumns...).From("CARI_HESAP_HAREKETLERI WITH (NOLOCK)")
}

// MovementFilter narrows an ERP movement listing. End is inclusive of the
// whole day.
type MovementFilter struct {
	CustomerCode string
	Start        *time.Time
	End          *time.Time
	Limit        int
}

func movementsQuery(f MovementFilter) sq.SelectBuilder {
	b := movementBase().Options(top(f.Limit)).OrderBy("cha_tarihi DESC", "cha_evrakno_sira DESC")
	if f.CustomerCode != "" {
		b = b.Where(sq.Eq{"cha_kod": f.CustomerCode})
	}
	if f.Start != nil {
		b = b.Where(sq.GtOrEq{"cha_tarihi": mssql.DateTime1(*f.Start)})
	}
	if f.End != nil {
		b = b.Where(sq.Lt{"cha_tarihi": mssql.DateTime1(f.End.AddDate(0, 0, 1))})
	}
	return b
}

func movementsAfterQuery(after *time.Time) sq.SelectBuilder {
	return afterFilter(movementBase(), "cha_lastup_date", after).OrderBy("cha_lastup_date")
}

// balanceQuery sums debit (cha_tip = 0) and credit (cha_tip = 1) movements.
func balanceQuery(code string) sq.SelectBuilder {
	return msql.Select(
		"ISNULL(SUM(CASE WHEN cha_tip = 0 THEN cha_meblag ELSE 0 END), 0) AS borc",
		"ISNULL(SUM(CASE WHEN cha_tip = 1 THEN cha_meblag ELSE 0 END), 0) AS alacak",
	).
		From("CARI_HESAP_HAREKETLERI WITH (NOLOCK)").
		Where(sq.Eq{"cha_kod": code})
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

func namesQuery(search string, limit int) sq.SelectBuilder {
	b := msql.Select("cari_kod", "cari_unvan1").
		Options(top(limit)).
		From("CARI_HESAPLAR WITH (NOLOCK)").
		OrderBy("cari_unvan1")
	if search = strings.TrimSpace(search); search != "" {
		b = b.Where(sq.Expr("cari_unvan1 LIKE ? ESCAPE '\\'", "%"+escapeLike(search)+"%"))
	}
	return b
}

// ---------------------------------------------------------------------------
// STOK_SATIS_FIYAT_LISTELERI + STOKLAR
// ---------------------------------------------------------------------------

var priceColumns = []string{
	"sfiyat_stokkod",
	"ISNULL(sto_isim, '') AS sto_isim",
	"ISNULL(sto_birim1_ad, '') AS sto_birim1_ad",
	"sfiyat_listesirano",
	"sfiyat_fiyati",
	"CASE WHEN sto_lastup_date > sfiyat_lastup_date THEN sto_lastup_date ELSE sfiyat_lastup_date END AS lastup_date",
}

func priceBase() sq.SelectBuilder {
	return msql.Select(priceColumns...).
		From("STOK_SATIS_FIYAT_LISTELERI WITH (NOLOCK)").
		LeftJoin("STOKLAR WITH (NOLOCK) ON sto_kod = sfiyat_stokkod")
}

func pricesQuery(stockCode string, listNo, limit int) sq.SelectBuilder {
	b := priceBase().Options(top(limit)).OrderBy("sfiyat_stokkod", "sfiyat_listesirano")
	if stockCode != "" {
		b = b.Where(sq.Eq{"sfiyat_stokkod": stockCode})
	}
	if listNo > 0 {
		b = b.Where(sq.Eq{"sfiyat_listesirano": listNo})
	}
	return b
}

// pricesAfterQuery picks up both price and product master changes.
func pricesAfterQuery(after *time.Time, listNo int) sq.SelectBuilder {
	b := priceBase().OrderBy("sfiyat_stokkod")
	if after != nil {
		at := mssql.DateTime1(*after)
		b = b.Where(sq.Or{
			sq.Gt{"sfiyat_lastup_date": at},
			sq.Gt{"sto_lastup_date": at},
		})
	}
	if listNo > 0 {
		b = b.Where(sq.Eq{"sfiyat_listesirano": listNo})
	}
	return b
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// afterFilter adds "column > after"; a nil watermark selects every row.
func afterFilter(b sq.SelectBuilder, column string, after *time.Time) sq.SelectBuilder {
	if after == nil {
		return b
	}
	return b.Where(sq.Gt{column: mssql.DateTime1(*after)})
}

func top(limit int) string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return fmt.Sprintf("TOP (%d)", limit)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `[`, `\[`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
