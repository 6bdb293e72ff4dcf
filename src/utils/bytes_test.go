package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConcatAll(t *testing.T) {
	Convey("Empty and nil parts should pack to an empty slice", t, func() {
		So(ConcatAll(), ShouldResemble, []byte{})
		So(ConcatAll(nil), ShouldResemble, []byte{})
		So(ConcatAll([]byte{}, nil), ShouldResemble, []byte{})
	})
	Convey("Parts should be packed back to back", t, func() {
		So(ConcatAll([]byte{'0'}, nil, []byte{'1'}), ShouldResemble, []byte{'0', '1'})
		So(ConcatAll([]byte("HUP_"), []byte("GENESIS"), []byte{0, 7}),
			ShouldResemble, append([]byte("HUP_GENESIS"), 0, 7))
	})
	Convey("The result should not alias its parts", t, func() {
		a := []byte{1, 2}
		out := ConcatAll(a, []byte{3})
		a[0] = 9
		So(out, ShouldResemble, []byte{1, 2, 3})
		So(cap(out), ShouldEqual, 3)
	})
}
