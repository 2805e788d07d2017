package cmp_test

import (
	"strconv"
	"testing"

	"github.com/nitikab23/autoai/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	for name, testcase := range map[string]struct {
		a        []int
		b        []int
		expected bool
	}{
		"equal slices match":            {a: []int{1, 2, 3}, b: []int{1, 2, 3}, expected: true},
		"order matters":                 {a: []int{1, 2, 3}, b: []int{3, 2, 1}, expected: false},
		"different lengths do not":      {a: []int{1, 2}, b: []int{1, 2, 3}, expected: false},
		"empty slices match":            {a: []int{}, b: []int{}, expected: true},
		"nil and empty slices match":    {a: nil, b: []int{}, expected: true},
		"different content does not":    {a: []int{1, 2, 3}, b: []int{1, 2, 4}, expected: false},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := cmp.SliceEq(testcase.a, testcase.b); actual != testcase.expected {
				t.Errorf("unmatch: actual = %v, expected = %v", actual, testcase.expected)
			}
		})
	}
}

func TestSliceContentEq(t *testing.T) {
	for name, testcase := range map[string]struct {
		a        []string
		b        []string
		expected bool
	}{
		"same content in another order matches": {
			a: []string{"x", "y", "z"}, b: []string{"z", "x", "y"}, expected: true,
		},
		"repeated items must repeat equally": {
			a: []string{"x", "x", "y"}, b: []string{"x", "y", "y"}, expected: false,
		},
		"extra items do not match": {
			a: []string{"x"}, b: []string{"x", "x"}, expected: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := cmp.SliceContentEq(testcase.a, testcase.b); actual != testcase.expected {
				t.Errorf("unmatch: actual = %v, expected = %v", actual, testcase.expected)
			}
		})
	}
}

func TestSliceEqWith(t *testing.T) {
	pred := func(a int, b string) bool { return strconv.Itoa(a) == b }

	if !cmp.SliceEqWith([]int{1, 2}, []string{"1", "2"}, pred) {
		t.Error("pairwise matching slices should match")
	}
	if cmp.SliceEqWith([]int{1, 2}, []string{"2", "1"}, pred) {
		t.Error("order should matter")
	}
}

func TestSliceContentEqWith(t *testing.T) {
	pred := func(a int, b string) bool { return strconv.Itoa(a) == b }

	if !cmp.SliceContentEqWith([]int{1, 2, 3}, []string{"3", "1", "2"}, pred) {
		t.Error("same content in another order should match")
	}
	if cmp.SliceContentEqWith([]int{1, 1, 2}, []string{"1", "2", "2"}, pred) {
		t.Error("repeated items should be required to repeat equally")
	}
}

func TestMapEqWith(t *testing.T) {
	pred := func(a int, b string) bool { return strconv.Itoa(a) == b }

	if !cmp.MapEqWith(map[string]int{"x": 1}, map[string]string{"x": "1"}, pred) {
		t.Error("maps with matching entries should match")
	}
	if cmp.MapEqWith(map[string]int{"x": 1}, map[string]string{"y": "1"}, pred) {
		t.Error("different keys should not match")
	}
	if cmp.MapEqWith(map[string]int{"x": 1, "y": 2}, map[string]string{"x": "1"}, pred) {
		t.Error("different sizes should not match")
	}
}
