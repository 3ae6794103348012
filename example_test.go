package vcell_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/vcell"
	"github.com/arloliu/vcell/errs"
)

func ExampleValue_BuildPath() {
	var root vcell.Value
	defer root.Fini()

	for _, name := range []string{"alice", "bob"} {
		user, err := root.BuildPath("users[]/name")
		if err != nil {
			fmt.Println(err)
			return
		}
		_ = user.InitString(name)
	}

	fmt.Println(root.Type(), root.Path("users").ArraySize())
	fmt.Println(root.Path("users[0]/name"), root.Path("users[-1]/name"))

	_, err := root.BuildPath("users/name")
	fmt.Println(errors.Is(err, errs.ErrTypeMismatch))
	// Output:
	// dict 2
	// alice bob
	// true
}

func ExampleValue_Int32() {
	var v vcell.Value
	v.InitDouble(-2.5)

	fmt.Println(v.Int32(), v.Uint32(), v.IsCompatible(vcell.TypeInt32))

	v.InitDouble(300)
	fmt.Println(v.Int32(), v.IsCompatible(vcell.TypeInt32), v.IsCompatible(vcell.TypeFloat))
	// Output:
	// -3 4294967293 false
	// 300 true true
}

func ExampleValue_DictAllOrdered() {
	var d vcell.Value
	_ = d.InitDict(vcell.WithMaintainOrder())
	defer d.Fini()

	for i, key := range []string{"c", "a", "b"} {
		d.DictAdd(key).InitInt32(int32(i))
	}

	var sorted, ordered []string
	for key, val := range d.DictAll() {
		sorted = append(sorted, fmt.Sprintf("%s=%d", key, val.Int32()))
	}
	for key := range d.DictAllOrdered() {
		ordered = append(ordered, key.String())
	}

	fmt.Println(strings.Join(sorted, " "))
	fmt.Println(strings.Join(ordered, " "))
	// Output:
	// a=1 b=2 c=0
	// c a b
}

func ExampleParsePath() {
	p, err := vcell.ParsePath("/items//[2]/tags[-1][]")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(p.Len(), p)
	for _, seg := range p.Segments() {
		fmt.Println(seg.Kind, seg.Key, seg.Index)
	}
	// Output:
	// 5 items[2]/tags[-1][]
	// Key items 0
	// Index  2
	// Key tags 0
	// Index  -1
	// Append  0
}

func ExampleEqual() {
	var a, b vcell.Value
	_ = a.InitAny(map[string]any{"x": []any{int32(1), "two"}})
	_ = b.InitAny(map[string]any{"x": []any{int32(1), "two"}})
	defer a.Fini()
	defer b.Fini()

	fmt.Println(vcell.Equal(&a, &b), vcell.Hash(&a) == vcell.Hash(&b))

	b.Path("x[0]").InitInt64(1)
	fmt.Println(vcell.Equal(&a, &b))
	// Output:
	// true true
	// false
}
