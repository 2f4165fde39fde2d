package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-01", want: "2024-03-01"},
		{in: "2024-03-01T23:30:00Z", want: "2024-03-01"},
		{in: "2024-03-01T23:30:00+05:00", want: "2024-03-01"},
		{in: "01/03/2024", wantErr: true},
		{in: "2024-02-30", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, d.String())
	}
}

func TestDate_JSON(t *testing.T) {
	var b struct {
		From *Date `json:"from"`
		To   *Date `json:"to"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"from":"2024-03-01","to":null}`), &b))
	require.Equal(t, NewDate(2024, time.March, 1), *b.From)
	require.Nil(t, b.To)

	require.Error(t, json.Unmarshal([]byte(`{"from":20240301}`), &b))

	out, err := json.Marshal(Borrowing{BorrowDate: NewDate(2024, time.March, 1)})
	require.NoError(t, err)
	require.Contains(t, string(out), `"borrow_date":"2024-03-01","return_date":null`)
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("x", 3600))))
	require.Equal(t, "2024-03-01", d.String())

	require.NoError(t, d.Scan([]byte("2024-04-02")))
	require.Equal(t, "2024-04-02", d.String())

	require.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.May, 9).Value()
	require.NoError(t, err)
	require.Equal(t, "2024-05-09", v)
}

func TestUpdateBookRequest_Apply(t *testing.T) {
	title, copies := "New", 0
	req := UpdateBookRequest{Title: &title, AvailableCopies: &copies}
	require.False(t, req.Empty())
	require.True(t, UpdateBookRequest{}.Empty())

	b := Book{ID: 1, Title: "Old", Author: "A", ISBN: "i", PublishedYear: 2000, AvailableCopies: 4}
	req.Apply(&b)
	require.Equal(t, Book{ID: 1, Title: "New", Author: "A", ISBN: "i", PublishedYear: 2000, AvailableCopies: 0}, b)
}
