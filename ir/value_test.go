package ir

import "testing"

func TestClassify(t *testing.T) {
	type classTest struct {
		in   string
		want Value
	}
	cts := []classTest{
		{in: "null", want: Null{}},
		{in: "true", want: Bool(true)},
		{in: "false", want: Bool(false)},
		{in: "42", want: Int(42)},
		{in: "-7", want: Int(-7)},
		{in: "007", want: Int(7)},
		{in: "3.14", want: Float(3.14)},
		{in: "1e14", want: Float(1e14)},
		{in: " 12 ", want: Int(12)},
		{in: "hello", want: Unquoted("hello")},
		{in: "truely", want: Unquoted("truely")},
		{in: "1.2.3", want: Unquoted("1.2.3")},
		{in: "+5", want: Unquoted("+5")},
		{in: "NaN", want: Unquoted("NaN")},
		{in: "10abc", want: Unquoted("10abc")},
		// out of int64 range becomes a float
		{in: "9999999999999999999", want: Float(9999999999999999999)},
	}
	for _, ct := range cts {
		if got := Classify(ct.in); got != ct.want {
			t.Errorf("%q: got %#v, want %#v", ct.in, got, ct.want)
		}
	}
}
