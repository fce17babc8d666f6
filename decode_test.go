package gnucash

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// testLedger is a minimal but namespace-faithful GnuCash book: two
// commodities, a price database, a small account tree and two transactions
// (a rent payment and a stock purchase).
const testLedger = `<?xml version="1.0" encoding="utf-8" ?>
<gnc-v2
     xmlns:gnc="http://www.gnucash.org/XML/gnc"
     xmlns:act="http://www.gnucash.org/XML/act"
     xmlns:book="http://www.gnucash.org/XML/book"
     xmlns:cmdty="http://www.gnucash.org/XML/cmdty"
     xmlns:price="http://www.gnucash.org/XML/price"
     xmlns:trn="http://www.gnucash.org/XML/trn"
     xmlns:ts="http://www.gnucash.org/XML/ts"
     xmlns:split="http://www.gnucash.org/XML/split">
<gnc:book version="2.0.0">
<book:id type="guid">00000000000000000000000000000001</book:id>
<gnc:commodity version="2.0.0">
  <cmdty:space>CURRENCY</cmdty:space>
  <cmdty:id>EUR</cmdty:id>
  <cmdty:name>Euro</cmdty:name>
</gnc:commodity>
<gnc:commodity version="2.0.0">
  <cmdty:space>NYSE</cmdty:space>
  <cmdty:id>ACME</cmdty:id>
  <cmdty:name>Acme Corp.</cmdty:name>
</gnc:commodity>
<gnc:pricedb version="1">
  <price>
    <price:commodity><cmdty:space>NYSE</cmdty:space><cmdty:id>ACME</cmdty:id></price:commodity>
    <price:time><ts:date>2023-01-05 00:00:00 +0100</ts:date></price:time>
    <price:value>500/100</price:value>
  </price>
  <price>
    <price:commodity><cmdty:space>NYSE</cmdty:space><cmdty:id>ACME</cmdty:id></price:commodity>
    <price:time><ts:date>2023-02-01 00:00:00 +0100</ts:date></price:time>
    <price:value>600/100</price:value>
  </price>
</gnc:pricedb>
<gnc:account version="2.0.0">
  <act:name>Root Account</act:name>
  <act:id type="guid">aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa</act:id>
  <act:type>ROOT</act:type>
  <act:commodity><cmdty:space>CURRENCY</cmdty:space><cmdty:id>EUR</cmdty:id></act:commodity>
</gnc:account>
<gnc:account version="2.0.0">
  <act:name>Current</act:name>
  <act:id type="guid">bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb</act:id>
  <act:type>ASSET</act:type>
  <act:commodity><cmdty:space>CURRENCY</cmdty:space><cmdty:id>EUR</cmdty:id></act:commodity>
  <act:parent type="guid">aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa</act:parent>
</gnc:account>
<gnc:account version="2.0.0">
  <act:name>Rent</act:name>
  <act:id type="guid">cccccccccccccccccccccccccccccccc</act:id>
  <act:type>EXPENSE</act:type>
  <act:commodity><cmdty:space>CURRENCY</cmdty:space><cmdty:id>EUR</cmdty:id></act:commodity>
  <act:parent type="guid">aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa</act:parent>
</gnc:account>
<gnc:account version="2.0.0">
  <act:name>Acme shares</act:name>
  <act:id type="guid">dddddddddddddddddddddddddddddddd</act:id>
  <act:type>STOCK</act:type>
  <act:commodity><cmdty:space>NYSE</cmdty:space><cmdty:id>ACME</cmdty:id></act:commodity>
  <act:parent type="guid">aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa</act:parent>
</gnc:account>
<gnc:transaction version="2.0.0">
  <trn:id type="guid">11111111111111111111111111111111</trn:id>
  <trn:date-posted><ts:date>2023-01-05 10:59:00 +0100</ts:date></trn:date-posted>
  <trn:description>rent January</trn:description>
  <trn:splits>
    <trn:split>
      <split:id type="guid">21111111111111111111111111111111</split:id>
      <split:value>7500/100</split:value>
      <split:quantity>7500/100</split:quantity>
      <split:account type="guid">cccccccccccccccccccccccccccccccc</split:account>
    </trn:split>
    <trn:split>
      <split:id type="guid">31111111111111111111111111111111</split:id>
      <split:value>-7500/100</split:value>
      <split:quantity>-7500/100</split:quantity>
      <split:account type="guid">bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb</split:account>
    </trn:split>
  </trn:splits>
</gnc:transaction>
<gnc:transaction version="2.0.0">
  <trn:id type="guid">41111111111111111111111111111111</trn:id>
  <trn:date-posted><ts:date>2023-01-05 11:00:00 +0100</ts:date></trn:date-posted>
  <trn:description>buy acme</trn:description>
  <trn:splits>
    <trn:split>
      <split:id type="guid">51111111111111111111111111111111</split:id>
      <split:value>5000/100</split:value>
      <split:quantity>10/1</split:quantity>
      <split:account type="guid">dddddddddddddddddddddddddddddddd</split:account>
    </trn:split>
    <trn:split>
      <split:id type="guid">61111111111111111111111111111111</split:id>
      <split:value>-5000/100</split:value>
      <split:quantity>-5000/100</split:quantity>
      <split:account type="guid">bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb</split:account>
    </trn:split>
  </trn:splits>
</gnc:transaction>
</gnc:book>
</gnc-v2>
`

// gzipped compresses a document the way GnuCash stores its books.
func gzipped(t *testing.T, doc string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(doc)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestDecode(t *testing.T) {
	book, err := Decode(gzipped(t, testLedger))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if n := len(book.Commodities()); n != 2 {
		t.Errorf("Commodities() has %d entries want 2", n)
	}
	if n := len(book.Accounts()); n != 4 {
		t.Errorf("Accounts() has %d entries want 4", n)
	}
	if n := len(book.Transactions()); n != 2 {
		t.Errorf("Transactions() has %d entries want 2", n)
	}

	acme := book.Commodity(CommodityID{Space: "NYSE", Symbol: "ACME"})
	if acme == nil {
		t.Fatal("Commodity(NYSE:ACME) = nil")
	}
	checkHistory(t, "acme prices", acme.Prices(), []point{
		{"2023-01-05", 5}, {"2023-02-01", 6},
	})

	rent := book.Account(uuid.MustParse("cccccccccccccccccccccccccccccccc"))
	if rent == nil {
		t.Fatal("Account(rent) = nil")
	}
	if rent.Type() != Expense {
		t.Errorf("rent Type() = %v want EXPENSE", rent.Type())
	}
	if rent.FullName() != "Rent" {
		t.Errorf("rent FullName() = %q want %q", rent.FullName(), "Rent")
	}

	tx := book.Transactions()[0]
	if got := tx.Date().String(); got != "2023-01-05" {
		t.Errorf("transaction date = %s want 2023-01-05", got)
	}
	if got := tx.Description(); got != "rent January" {
		t.Errorf("transaction description = %q want %q", got, "rent January")
	}
}

func TestDecodeDerivedHistories(t *testing.T) {
	book, err := Decode(gzipped(t, testLedger))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	rent := book.Account(uuid.MustParse("cccccccccccccccccccccccccccccccc"))
	total, err := rent.TotalBalanceHistory()
	if err != nil {
		t.Fatalf("TotalBalanceHistory() error = %v", err)
	}
	checkHistory(t, "rent total balance", total, []point{{"2023-01-05", 75}})

	// The stock account tracks the ACME price: 10 shares at 5 then 6 EUR.
	stock := book.Account(uuid.MustParse("dddddddddddddddddddddddddddddddd"))
	balance, err := stock.BalanceHistory()
	if err != nil {
		t.Fatalf("BalanceHistory() error = %v", err)
	}
	checkHistory(t, "stock balance", balance, []point{
		{"2023-01-05", 50}, {"2023-02-01", 60},
	})

	// Both transactions hit Current on the same date.
	current := book.Account(uuid.MustParse("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
	checkHistory(t, "current quantity", current.QuantityHistory(), []point{
		{"2023-01-05", -125},
	})

	// The root nets to zero except for the unrealized stock gain.
	root := book.Account(uuid.MustParse("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	rootTotal, err := root.TotalBalanceHistory()
	if err != nil {
		t.Fatalf("TotalBalanceHistory() error = %v", err)
	}
	checkHistory(t, "root total balance", rootTotal, []point{
		{"2023-01-05", 0}, {"2023-02-01", 10},
	})
}

func TestDecodeNotGzip(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("definitely not gzip"))); err == nil {
		t.Error("Decode() on plain text expected an error")
	}
}

func TestDecodeNotXML(t *testing.T) {
	if _, err := Decode(gzipped(t, "this is not xml at all <<<")); err == nil {
		t.Error("Decode() on non-XML content expected an error")
	}
}

func TestDecodeMalformed(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown account type",
			doc:  strings.ReplaceAll(testLedger, ">ASSET<", ">SAVINGS<"),
		},
		{
			name: "bad rational value",
			doc:  strings.ReplaceAll(testLedger, "7500/100<", "7500/banana<"),
		},
		{
			name: "bad price date",
			doc:  strings.ReplaceAll(testLedger, "2023-02-01 00:00:00 +0100", "last tuesday"),
		},
		{
			name: "bad account id",
			doc:  strings.ReplaceAll(testLedger, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb</act:id>", "not-a-guid</act:id>"),
		},
	}
	for _, tc := range testCases {
		_, err := Decode(gzipped(t, tc.doc))
		var malformed *MalformedLedgerError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: Decode() error = %v want MalformedLedgerError", tc.name, err)
		}
	}
}

func TestDecodeUnbalancedTransaction(t *testing.T) {
	doc := strings.ReplaceAll(testLedger, "-7500/100", "-7499/100")
	_, err := Decode(gzipped(t, doc))

	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("Decode() error = %v want IntegrityError", err)
	}
}

func TestDecodeDanglingSplitAccount(t *testing.T) {
	doc := strings.ReplaceAll(testLedger,
		`<split:account type="guid">cccccccccccccccccccccccccccccccc</split:account>`,
		`<split:account type="guid">99999999999999999999999999999999</split:account>`)
	_, err := Decode(gzipped(t, doc))

	var ref *UnknownRefError
	if !errors.As(err, &ref) {
		t.Fatalf("Decode() error = %v want UnknownRefError", err)
	}
	if ref.Kind != "account" {
		t.Errorf("UnknownRefError.Kind = %q want %q", ref.Kind, "account")
	}
}

func TestDecodeDanglingPriceCommodity(t *testing.T) {
	doc := strings.Replace(testLedger,
		`<price:commodity><cmdty:space>NYSE</cmdty:space><cmdty:id>ACME</cmdty:id></price:commodity>`,
		`<price:commodity><cmdty:space>NYSE</cmdty:space><cmdty:id>ACMX</cmdty:id></price:commodity>`, 1)
	_, err := Decode(gzipped(t, doc))

	var ref *UnknownRefError
	if !errors.As(err, &ref) {
		t.Fatalf("Decode() error = %v want UnknownRefError", err)
	}
}

// Element matching goes by local tag name, so a book without any namespace
// prefixes decodes just the same.
func TestDecodeWithoutNamespacePrefixes(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8" ?>
<gnc-v2>
<book>
<commodity><space>CURRENCY</space><id>EUR</id><name>Euro</name></commodity>
<account>
  <name>Root Account</name>
  <id type="guid">aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa</id>
  <type>ROOT</type>
  <commodity><space>CURRENCY</space><id>EUR</id></commodity>
</account>
</book>
</gnc-v2>
`
	book, err := Decode(gzipped(t, doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n := len(book.Accounts()); n != 1 {
		t.Errorf("Accounts() has %d entries want 1", n)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gnucash")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(testLedger)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	book, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n := len(book.Transactions()); n != 2 {
		t.Errorf("Transactions() has %d entries want 2", n)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.gnucash")); err == nil {
		t.Error("Load() on a missing file expected an error")
	}
}
