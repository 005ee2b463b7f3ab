package tlv

import (
	"fmt"
	"math"

	"codello.dev/asn1/v2"
)

func ExampleCombinedLength() {
	fmt.Println(CombinedLength(42, LengthIndefinite))
	fmt.Println(CombinedLength(math.MaxInt, 2))
	fmt.Println(CombinedLength(3, 5))

	// Output:
	// -1
	// -1
	// 8
}

func ExampleHeader_String() {
	fmt.Println(Header{Tag: asn1.Universal(asn1.TagSequence), Constructed: true, Length: LengthIndefinite})
	fmt.Println(Header{Tag: asn1.ContextSpecific(3), Length: 12})
	fmt.Println(EndOfContents)

	// Output:
	// [UNIVERSAL 16]/c:-1
	// [3]/p:12
	// EndOfContents
}

func ExampleParseElement() {
	e, rest, err := ParseElement([]byte{0x30, 0x80, 0x02, 0x01, 0x04, 0x00, 0x00, 0xff})
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Header)
	fmt.Printf("% x\n", e.Content)
	fmt.Printf("% x\n", rest)

	// Output:
	// [UNIVERSAL 16]/c:-1
	// 02 01 04
	// ff
}
