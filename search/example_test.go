package search_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/appcatalog/catalog"
	"github.com/jonwraymond/appcatalog/search"
)

func ExampleBuild() {
	items := []catalog.Item{
		{Name: "Firefox", Summary: "Web browser", Maintainer: "mozilla"},
		{Name: "Krita", Summary: "Digital painting", Maintainer: "kde"},
	}

	ix, err := search.Build(items, search.Config{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = ix.Close() }()

	fmt.Println("Indexed:", ix.Len())
	// Output:
	// Indexed: 2
}

func ExampleIndex_All() {
	items := []catalog.Item{
		{Name: "Firefox", Summary: "Web browser", Maintainer: "mozilla"},
		{Name: "Krita", Summary: "Digital painting", Maintainer: "kde"},
		{Name: "Inkscape", Summary: "Vector graphics", Maintainer: "inkscape"},
	}

	ix, _ := search.Build(items, search.Config{})
	defer func() { _ = ix.Close() }()

	// One letter off still matches.
	for hit, err := range ix.All(context.Background(), "krta") {
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(hit.Item.Name)
	}
	// Output:
	// Krita
}
