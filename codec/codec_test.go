package codec

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDatetimeRFC3339(t *testing.T) {
	c := Datetime(RFC3339)
	v, err := c.Decode("2022-08-26T18:38:00.000+02:00")
	if err != nil {
		t.Fatal(err)
	}
	ts := v.(time.Time)
	if _, offset := ts.Zone(); offset != 2*3600 {
		t.Errorf("offset lost: %d", offset)
	}
	enc, err := c.Encode(ts)
	if err != nil {
		t.Fatal(err)
	}
	back, err := c.Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !back.(time.Time).Equal(ts) {
		t.Errorf("round trip drifted: %v vs %v", back, ts)
	}
}

func TestDatetimeRFC7231(t *testing.T) {
	c := Datetime(RFC7231)
	v, err := c.Decode("Mon, 25 May 2015 08:00:00 GMT")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2015, 5, 25, 8, 0, 0, 0, time.UTC)
	if !v.(time.Time).Equal(want) {
		t.Errorf("got %v", v)
	}
	enc, err := c.Encode(want)
	if err != nil {
		t.Fatal(err)
	}
	if enc != "Mon, 25 May 2015 08:00:00 GMT" {
		t.Errorf("got %v", enc)
	}
}

func TestDatetimeUnix(t *testing.T) {
	c := Datetime(UnixTime)
	v, err := c.Decode(json.Number("1469074261"))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Unix(1469074261, 0).UTC()
	if !v.(time.Time).Equal(want) {
		t.Errorf("got %v", v)
	}
	enc, err := c.Encode(want)
	if err != nil {
		t.Fatal(err)
	}
	if enc != json.Number("1469074261") {
		t.Errorf("got %v (%T)", enc, enc)
	}
}

func TestDatetimeBadFormat(t *testing.T) {
	for _, c := range []Codec{Datetime(RFC3339), Datetime(RFC7231), Date(), TimeOfDay(), Decimal()} {
		if _, err := c.Decode("certainly not a timestamp"); !errors.Is(err, ErrBadFormat) {
			t.Errorf("got %v", err)
		}
	}
}

func TestDate(t *testing.T) {
	c := Date()
	v, err := c.Decode("2016-02-29")
	if err != nil {
		t.Fatal(err)
	}
	enc, err := c.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	if enc != "2016-02-29" {
		t.Errorf("got %v", enc)
	}
}

func TestTimeOfDay(t *testing.T) {
	c := TimeOfDay()
	for _, tc := range []struct{ in, out string }{
		{"11:34:56", "11:34:56"},
		{"11:34:56.123456", "11:34:56.123456"},
		{"11:34", "11:34:00"},
	} {
		v, err := c.Decode(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		enc, err := c.Encode(v)
		if err != nil {
			t.Fatal(err)
		}
		if enc != tc.out {
			t.Errorf("%s: got %v, want %s", tc.in, enc, tc.out)
		}
	}
}

func TestBytes(t *testing.T) {
	std := Bytes(Base64)
	enc, err := std.Encode([]byte("hello, world"))
	if err != nil {
		t.Fatal(err)
	}
	if enc != "aGVsbG8sIHdvcmxk" {
		t.Errorf("got %v", enc)
	}
	v, err := std.Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte("hello, world"), v); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	url := Bytes(Base64URL)
	enc, err = url.Encode([]byte{0xfb, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	// url-safe alphabet, no padding
	if enc != "-_8" {
		t.Errorf("got %v", enc)
	}
	v, err = url.Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{0xfb, 0xff}, v); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestBytesLenientDecode(t *testing.T) {
	c := Bytes(Base64)
	v, err := c.Decode("!!! not base64 !!!")
	if err != nil {
		t.Fatal(err)
	}
	if v != "!!! not base64 !!!" {
		t.Errorf("got %v", v)
	}
}

func TestDecimalPrecision(t *testing.T) {
	c := Decimal()
	v, err := c.Decode(json.Number("1.00"))
	if err != nil {
		t.Fatal(err)
	}
	enc, err := c.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	if enc != json.Number("1.00") {
		t.Errorf("precision lost: %v", enc)
	}
}

func TestIntString(t *testing.T) {
	c := IntString()
	v, err := c.Decode("9007199254740993")
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(9007199254740993) {
		t.Errorf("got %v (%T)", v, v)
	}
	enc, err := c.Encode(int64(42))
	if err != nil {
		t.Fatal(err)
	}
	if enc != "42" {
		t.Errorf("got %v (%T)", enc, enc)
	}
	// lenient: unparsable text passes through
	v, err = c.Decode("not-a-number")
	if err != nil || v != "not-a-number" {
		t.Errorf("got %v, %v", v, err)
	}
}

func TestEnum(t *testing.T) {
	c := Enum("dog", "cat")
	v, err := c.Decode("cat")
	if err != nil || v != "cat" {
		t.Errorf("got %v, %v", v, err)
	}
	// unknown server values pass through, never an error
	v, err = c.Decode("axolotl")
	if err != nil || v != "axolotl" {
		t.Errorf("got %v, %v", v, err)
	}

	nums := Enum(1, 2, 3)
	v, err = nums.Decode(json.Number("2"))
	if err != nil || v != 2 {
		t.Errorf("got %v (%T), %v", v, v, err)
	}
}
