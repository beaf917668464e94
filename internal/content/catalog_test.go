package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceFromButton(t *testing.T) {
	cases := []struct {
		text  string
		place Place
		ok    bool
	}{
		{text: "В зале", place: PlaceGym, ok: true},
		{text: "Дома", place: PlaceHome, ok: true},
		{text: "в зале", ok: false},
		{text: "Вернуться в меню", ok: false},
	}
	for _, tc := range cases {
		place, ok := PlaceFromButton(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.place, place, tc.text)
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(PlaceGym, "1", "1")
	require.True(t, ok)
	assert.NotEmpty(t, r.Videos)
	assert.Contains(t, r.Text, "Тренировка 1")

	r, ok = Lookup(PlaceGym, "2-3", "Ягодицы")
	require.True(t, ok)
	assert.NotEmpty(t, r.Videos)

	_, ok = Lookup(PlaceGym, "1", "99")
	assert.False(t, ok)
	_, ok = Lookup(PlaceHome, "10-12", "Ноги")
	assert.False(t, ok)
	_, ok = Lookup(Place("street"), "1", "1")
	assert.False(t, ok)
}

func TestMonthBlocksAndKeys(t *testing.T) {
	for _, b := range MonthBlocks {
		assert.True(t, IsMonthBlock(b))
	}
	assert.False(t, IsMonthBlock("13"))

	for _, g := range GroupKeys {
		assert.True(t, IsGroupKey(g))
	}
	assert.False(t, IsGroupKey("Пресс"))
}

func TestMonthDescription(t *testing.T) {
	for _, b := range MonthBlocks {
		d := MonthDescription(b)
		assert.True(t, strings.Contains(d, "Выбирайте тренировку"), b)
	}
	assert.Equal(t, "Выбирайте тренировку 👇", MonthDescription("нет такого"))
}
