package gocheck2

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into go test runner
func Test(t *testing.T) {
	TestingT(t)
}

type CheckersSuite struct{}

var _ = Suite(&CheckersSuite{})

func testChecker(
	c *C,
	checker Checker,
	expectedResult bool,
	expectedErr string,
	params ...interface{}) {

	actualResult, actualErr := checker.Check(params, nil)
	if actualResult != expectedResult || actualErr != expectedErr {
		c.Fatalf(
			"%s returned (%#v, %#v) rather than (%#v, %#v)",
			checker.Info().Name,
			actualResult, actualErr, expectedResult, expectedErr)
	}
}

func (s *CheckersSuite) TestIsTrueIsFalse(c *C) {
	testChecker(c, IsTrue, true, "", true)
	testChecker(c, IsTrue, false, "", false)
	testChecker(c, IsFalse, true, "", false)
	testChecker(c, IsTrue, false, "Argument to IsTrue must be bool", 1)
}

func (s *CheckersSuite) TestSplitOutput(c *C) {
	c.Assert(SplitOutput(""), DeepEquals, []string{})
	c.Assert(SplitOutput("a\n"), DeepEquals, []string{"a"})
	c.Assert(SplitOutput("a\nb\n"), DeepEquals, []string{"a", "b"})
	c.Assert(SplitOutput("a\nb"), DeepEquals, []string{"a", "b"})
	c.Assert(SplitOutput("\n"), DeepEquals, []string{""})
}

func (s *CheckersSuite) TestHasLines(c *C) {
	testChecker(c, HasLines, true, "", "hello x\n", []string{"hello x"})
	testChecker(c, HasLines, true, "", []byte("a\nb\n"), []string{"a", "b"})
	testChecker(c, HasLines, true, "", "", []string{})
	testChecker(c, HasLines, false, "", "a\nb\n", []string{"b", "a"})
	testChecker(
		c, HasLines, false, "First argument to HasLines must be a string or []byte",
		3, []string{})
	testChecker(
		c, HasLines, false, "Second argument to HasLines must be []string",
		"a\n", "a")
}

func (s *CheckersSuite) TestContains(c *C) {
	testChecker(c, Contains, true, "", "hello world", "world")
	testChecker(c, Contains, false, "", "hello world", "joe")
	testChecker(c, Contains, false, "First argument to Contains must be a string", 1, "a")
}
