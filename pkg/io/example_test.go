package io_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/gridpath/pkg/io"
	"github.com/matzehuels/gridpath/pkg/search"
)

func ExampleReadInstance() {
	in := `# 3-4-5 triangle corner
3 2 2 a c
a 0 0
b 3 0
c 3 4
a b
b c
`
	g, err := io.ReadInstance(strings.NewReader(in))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, _ := search.AStar(context.Background(), g, nil)
	_ = io.WriteResultJSON(os.Stdout, res)
	// Output:
	// {
	//   "algorithm": "astar",
	//   "reachable": true,
	//   "distance": 7,
	//   "path": [
	//     "a",
	//     "b",
	//     "c"
	//   ],
	//   "visited": 3
	// }
}
