// Extensions to the go-check unittest framework for asserting on captured
// console output.
package gocheck2

import (
	"reflect"
	"strings"

	. "gopkg.in/check.v1"

	"github.com/dropbox/libhello/io2"
)

// -----------------------------------------------------------------------
// IsTrue / IsFalse checker.

type isBoolValueChecker struct {
	*CheckerInfo
	expected bool
}

func (checker *isBoolValueChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(bool)
	if !ok {
		return false, "Argument to " + checker.Name + " must be bool"
	}

	return obtained == checker.expected, ""
}

// The IsTrue checker verifies that the obtained value is true.
//
// For example:
//
//     c.Assert(value, IsTrue)
//
var IsTrue Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsTrue", Params: []string{"obtained"}},
	true,
}

// The IsFalse checker verifies that the obtained value is false.
var IsFalse Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsFalse", Params: []string{"obtained"}},
	false,
}

// -----------------------------------------------------------------------
// HasLines checker.

// SplitOutput splits newline-terminated console output into its lines. Empty
// output has no lines. A missing final newline still yields the last line.
func SplitOutput(out string) []string {
	lines, incomplete := io2.SplitLines(out)
	if incomplete != "" {
		lines = append(lines, incomplete)
	}
	return lines
}

type hasLinesChecker struct {
	*CheckerInfo
}

func (checker *hasLinesChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	var obtained string
	switch v := params[0].(type) {
	case string:
		obtained = v
	case []byte:
		obtained = string(v)
	default:
		return false, "First argument to HasLines must be a string or []byte"
	}

	expected, ok := params[1].([]string)
	if !ok {
		return false, "Second argument to HasLines must be []string"
	}

	return reflect.DeepEqual(SplitOutput(obtained), expected), ""
}

// The HasLines checker verifies that captured output consists of exactly the
// expected lines, in order.
//
// For example:
//
//     c.Assert(stdout.String(), HasLines, []string{"hello x (0)"})
//
var HasLines Checker = &hasLinesChecker{
	&CheckerInfo{Name: "HasLines", Params: []string{"obtained", "lines"}},
}

// -----------------------------------------------------------------------
// Contains checker.

type containsChecker struct {
	*CheckerInfo
}

func (checker *containsChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(string)
	if !ok {
		return false, "First argument to Contains must be a string"
	}
	substr, ok := params[1].(string)
	if !ok {
		return false, "Second argument to Contains must be a string"
	}
	return strings.Contains(obtained, substr), ""
}

// The Contains checker verifies that the obtained string contains substr.
var Contains Checker = &containsChecker{
	&CheckerInfo{Name: "Contains", Params: []string{"obtained", "substr"}},
}
