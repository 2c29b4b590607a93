// Command counter prints the number of files below each directory argument,
// or below the working directory when none is given.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/commonmodules/commonmodules/util"
)

var ext = flag.String("e", "", "Only count files with this extension.")

func main() {
	flag.Parse()
	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"./"}
	}
	total := 0
	for _, dir := range dirs {
		count, err := util.CountFiles(dir, *ext)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if len(dirs) > 1 {
			fmt.Printf("%s: %d\n", dir, count)
		}
		total += count
	}
	fmt.Println(total)
}
