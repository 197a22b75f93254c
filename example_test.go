package memomap_test

import (
	"fmt"

	"github.com/zeebo/memomap"
)

func ExampleMap_GetOrInsert() {
	memo := memomap.New[int, string]()

	one := memo.GetOrInsert(1, func() string { return "one" })
	two := memo.GetOrInsert(1, func() string { return "not one" })

	fmt.Println(*one, *two)
	// Output: one one
}
