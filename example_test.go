package msbt_test

import (
	"fmt"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/section"
)

func Example() {
	b, err := msbt.NewBuilder()
	if err != nil {
		panic(err)
	}
	if _, err := b.AddText("Greeting", "Hello"); err != nil {
		panic(err)
	}
	if _, err := b.AddText("Farewell", "Goodbye"); err != nil {
		panic(err)
	}
	m, err := b.Build()
	if err != nil {
		panic(err)
	}

	data, err := m.Bytes()
	if err != nil {
		panic(err)
	}

	parsed, err := msbt.Decode(data)
	if err != nil {
		panic(err)
	}

	err = parsed.UpdateLabels(func(ed *section.LabelEditor) error {
		return ed.SetName(0, "Welcome")
	})
	if err != nil {
		panic(err)
	}

	elems, _ := parsed.Message("Welcome")
	fmt.Println(encoding.PlainText(elems))
	fmt.Println(parsed.Header().SectionCount, len(data)%16)
	// Output:
	// Hello
	// 2 0
}
