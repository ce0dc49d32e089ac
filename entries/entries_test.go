package entries_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xlab/treeprint"

	"github.com/gad-lang/cobol/entries"
)

func TestEntries(t *testing.T) {
	e := entries.New[int]()
	require.False(t, e.Exists("payroll"))

	exists, unique := e.ExistsAndUnique("payroll")
	require.False(t, exists)
	require.False(t, unique)

	e.Add("Payroll", 1)
	require.True(t, e.Exists("PAYROLL"))
	exists, unique = e.ExistsAndUnique("payroll")
	require.True(t, exists)
	require.True(t, unique)

	e.Add("PAYROLL", 2)
	exists, unique = e.ExistsAndUnique("Payroll")
	require.True(t, exists)
	require.False(t, unique)

	all, err := e.GetAll("payroll")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, all)

	v, err := e.GetUnique("PAYROLL")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	require.Equal(t, 1, e.Len())
	require.Equal(t, 2, e.Count())
	require.Equal(t, []string{"Payroll"}, e.Names())
}

func TestEntries_NotFound(t *testing.T) {
	var e entries.Entries[string]
	_, err := e.GetAll("X")
	require.ErrorIs(t, err, entries.ErrNotFound)
	_, err = e.GetUnique("X")
	require.ErrorIs(t, err, entries.ErrNotFound)

	e.Add("X", "first")
	v, err := e.GetUnique("x")
	require.NoError(t, err)
	require.Equal(t, "first", v)
}

func TestEntries_Each(t *testing.T) {
	e := entries.New[string]()
	e.Add("b", "1")
	e.Add("a", "2")
	e.Add("B", "3")

	var got []string
	e.Each(func(name, entry string) {
		got = append(got, name+"="+entry)
	})
	require.Equal(t, []string{"b=1", "b=3", "a=2"}, got)
}

func TestEntries_Tree(t *testing.T) {
	e := entries.New[string]()
	e.Add("IN-FILE", "input")
	e.Add("OUT-FILE", "output")
	e.Add("out-file", "again")

	s := e.Tree("files")
	require.Contains(t, s, "files")
	require.Contains(t, s, "[IN-FILE]  input")
	require.Contains(t, s, "[OUT-FILE]  2 entries")
	require.Contains(t, s, "again")

	root := treeprint.New()
	e.AddTo(root, "files")
	require.Contains(t, root.String(), "[2]  files")
}
