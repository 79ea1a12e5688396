package types_test

import (
	"testing"

	"github.com/mna/aucc/lang/types"
	"github.com/stretchr/testify/assert"
)

func TestAlignTo(t *testing.T) {
	assert.Equal(t, 8, types.AlignTo(5, 8))
	assert.Equal(t, 16, types.AlignTo(11, 8))
	assert.Equal(t, 0, types.AlignTo(0, 8))
}

func TestPointerAndArray(t *testing.T) {
	p := types.PointerTo(types.TyInt)
	assert.Equal(t, 8, p.Size)
	assert.Equal(t, 8, p.Align)
	assert.Same(t, types.TyInt, p.Base)

	a := types.ArrayOf(types.TyChar, 10)
	assert.Equal(t, 10, a.Size)
	assert.Equal(t, 1, a.Align)
	assert.Equal(t, 10, a.ArrayLen)
}

func TestStructLayout(t *testing.T) {
	// struct P { int x; char y; int z; };
	members := []*types.Member{
		{Ty: types.TyInt, Name: "x"},
		{Ty: types.TyChar, Name: "y"},
		{Ty: types.TyInt, Name: "z"},
	}
	ty := types.NewStruct(members)
	assert.Equal(t, 0, members[0].Offset)
	assert.Equal(t, 4, members[1].Offset)
	assert.Equal(t, 8, members[2].Offset)
	assert.Equal(t, 4, ty.Align)
	assert.Equal(t, 12, ty.Size)
}

func TestUnionLayout(t *testing.T) {
	members := []*types.Member{
		{Ty: types.TyChar, Name: "c"},
		{Ty: types.TyInt, Name: "i"},
	}
	ty := types.NewUnion(members)
	for _, m := range members {
		assert.Equal(t, 0, m.Offset)
	}
	assert.Equal(t, 4, ty.Size)
	assert.Equal(t, 4, ty.Align)
}

func TestIsInteger(t *testing.T) {
	assert.True(t, types.IsInteger(types.TyInt))
	assert.True(t, types.IsInteger(types.TyLong))
	assert.False(t, types.IsInteger(types.PointerTo(types.TyInt)))
	assert.False(t, types.IsInteger(types.TyVoid))
}

func TestFindMember(t *testing.T) {
	members := []*types.Member{{Ty: types.TyInt, Name: "x"}}
	ty := types.NewStruct(members)
	assert.Same(t, members[0], types.FindMember(ty, "x"))
	assert.Nil(t, types.FindMember(ty, "y"))
}
