package params_test

import (
	"fmt"

	"github.com/helio-labs/param-common/params"
	"github.com/helio-labs/param-common/shape"
)

func ExampleValidate() {
	ref := shape.NewStructure([]string{"id"},
		shape.Member{Name: "id", Ref: shape.NewString()},
		shape.Member{Name: "count", Ref: shape.NewInteger()},
	)

	err := params.Validate(ref, map[string]any{"count": "5"}, params.DefaultOptions())
	fmt.Println(err)
	// Output:
	// parameter validator found 2 errors:
	//   - missing required parameter params["id"]
	//   - expected params["count"] to be an integer, got value "5" (class: string) instead.
}

func ExampleValidator_Validate() {
	v := params.New(shape.NewList(shape.NewString()), params.DefaultOptions())

	err := v.Validate([]any{"a", 2, "c"})
	fmt.Println(err)
	// Output:
	// expected params[1] to be a string, got value 2 (class: int) instead.
}
