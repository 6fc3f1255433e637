package macro_test

import (
	"fmt"

	"github.com/shibukawa/propmacro/macro"
)

func Example() {
	user := macro.NewClass("User", macro.WithLogger(macro.DiscardLogger)).
		Define("displayName", macro.Reads("nick", "anonymous")).
		Define("adult", macro.GTE("age", 18)).
		Define("city", macro.Alias("address.city"))

	obj := user.New(map[string]any{
		"age":     20,
		"address": map[string]any{"city": "Tokyo"},
	})

	fmt.Println(obj.Get("displayName"))
	fmt.Println(obj.Get("adult"))

	_ = obj.Set("city", "Osaka")
	fmt.Println(obj.Get("city"))

	// Output:
	// anonymous
	// true
	// Osaka
}

func ExampleSortBy() {
	shop := macro.NewClass("Shop").
		Define("byPrice", macro.SortBy("items", "price")).
		Define("total", macro.Sum("prices"))

	obj := shop.New(map[string]any{
		"items": []any{
			map[string]any{"sku": "ink", "price": 5},
			map[string]any{"sku": "pen", "price": 2},
		},
		"prices": []any{5, 2},
	})

	for _, item := range obj.Get("byPrice").([]any) {
		fmt.Println(item.(map[string]any)["sku"])
	}

	fmt.Println(obj.Get("total"))

	// Output:
	// pen
	// ink
	// 7
}
