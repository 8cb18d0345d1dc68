// catalogcheck validates terrain catalogs and prints the sum of every
// transition row, so a row that drifted from 1 is easy to spot.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"k8s.io/klog/v2"

	"markovmap/internal/terrain"
)

var flagCatalog = flag.String("catalog", terrain.ClassicCatalog, "built-in catalog to check when no files are given")

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	failed := false
	if flag.NArg() == 0 {
		c, err := terrain.CatalogNamed(*flagCatalog)
		if err != nil {
			klog.Exitf("%v", err)
		}
		failed = !check(*flagCatalog, c.Doc())
	}
	for _, path := range flag.Args() {
		doc, err := readDoc(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if !check(path, doc) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func readDoc(path string) (terrain.CatalogDoc, error) {
	var doc terrain.CatalogDoc
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	err = json.Unmarshal(raw, &doc)
	return doc, err
}

// check prints the row sums of doc and validates it. Documents that fail to
// build still get their raw row sums printed, so broken rows show up.
func check(label string, doc terrain.CatalogDoc) bool {
	c, err := doc.Catalog()
	if err == nil {
		for i, sum := range c.RowSums() {
			printSum(label, c.Name(terrain.Category(i)), sum)
		}
		fmt.Printf("%s: ok\n", label)
		return true
	}
	for _, cat := range doc.Categories {
		sum := 0.0
		for _, p := range doc.Transitions[cat.Name] {
			sum += p
		}
		printSum(label, cat.Name, sum)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", label, err)
	return false
}

func printSum(label, name string, sum float64) {
	mark := ""
	if math.Abs(sum-1) > terrain.Tolerance {
		mark = "  <-- off"
	}
	fmt.Printf("%s: %-14s %.6f%s\n", label, name, sum, mark)
}
