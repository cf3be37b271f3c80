package excerpt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type namedJenny string

func (n namedJenny) JennyName() string { return string(n) }

func TestFSWriteVerify(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs := NewFS()
	require.NoError(t, fs.Add(
		File{RelativePath: "b/B.java", Data: []byte("class B {}\n")},
		File{RelativePath: "A.java", Data: []byte("class A {}\n")},
	))
	require.Equal(t, 2, fs.Len())

	require.Error(t, fs.Verify(ctx, dir), "nothing has been written yet")

	require.NoError(t, fs.Write(ctx, dir))
	require.NoError(t, fs.Verify(ctx, dir))

	got, err := os.ReadFile(filepath.Join(dir, "b", "B.java"))
	require.NoError(t, err)
	require.Equal(t, "class B {}\n", string(got))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte("class A { int x; }\n"), 0600))
	err = fs.Verify(ctx, dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "A.java would have changed")
	require.NotContains(t, err.Error(), "B.java")
}

func TestFSVerifyMissing(t *testing.T) {
	fs := NewFS()
	require.NoError(t, fs.Add(File{RelativePath: "gone.java"}))

	err := fs.Verify(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "should exist, but does not")
}

func TestFSAddConflict(t *testing.T) {
	fs := NewFS()
	require.NoError(t, fs.Add(File{RelativePath: "A.java", From: []NamedJenny{namedJenny("first")}}))

	err := fs.Add(
		File{RelativePath: "C.java"},
		File{RelativePath: "A.java", From: []NamedJenny{namedJenny("second")}},
	)
	require.True(t, errors.Is(err, ErrInvalidFile))
	require.Contains(t, err.Error(), "already created by first")
	require.Equal(t, 1, fs.Len(), "a failed Add must not add any file")
}

func TestFSMerge(t *testing.T) {
	a, b := NewFS(), NewFS()
	require.NoError(t, a.Add(File{RelativePath: "a"}))
	require.NoError(t, b.Add(File{RelativePath: "b"}, File{RelativePath: "c"}))

	require.NoError(t, a.Merge(b))
	fl := a.AsFiles()
	require.Len(t, fl, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{fl[0].RelativePath, fl[1].RelativePath, fl[2].RelativePath})

	require.Error(t, a.Merge(b))
}

func TestFilesValidate(t *testing.T) {
	tt := []struct {
		name string
		fl   Files
		ok   bool
	}{
		{name: "valid", fl: Files{{RelativePath: "a"}, {RelativePath: "b/a"}}, ok: true},
		{name: "empty path", fl: Files{{RelativePath: ""}}},
		{name: "absolute", fl: Files{{RelativePath: "/tmp/a"}}},
		{name: "duplicate", fl: Files{{RelativePath: "a"}, {RelativePath: "a"}}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fl.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidFile)
		})
	}
}
