package glovebin_test

import (
	"fmt"

	"github.com/hupe1980/glovebin"
	"github.com/hupe1980/glovebin/vector"
)

func ExampleCosineDistance() {
	cat := vector.FromValues([]float64{1, 0, 0, 0})
	dog := vector.FromValues([]float64{0, 1, 0, 0})

	fmt.Println(glovebin.CosineDistance(cat, dog))
	fmt.Println(glovebin.CosineDistance(cat, nil))
	// Output:
	// 1
	// 1
}

func ExampleCosineDistanceView() {
	buf := []float64{3, 4}
	v := vector.ViewOf(buf)
	v.Neg()

	fmt.Println(buf)
	fmt.Printf("%.1f\n", glovebin.CosineDistanceView(v, vector.ViewOf([]float64{3, 4})))
	// Output:
	// [-3 -4]
	// 2.0
}
