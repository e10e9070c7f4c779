package mussurana_test

import (
	"errors"
	"fmt"
	"testing"

	mussurana "github.com/damiaoterto/mussurana-cache"
)

func ExampleNew() {
	c, err := mussurana.New(mussurana.WithMaxMemory(200), mussurana.WithMaxItems(2))
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.Set("key1", []byte("value1"), mussurana.TTLSeconds(1), 1)
	v, ok := c.Get("key1")
	fmt.Println(string(v), ok)

	_, ok = c.Get("missing")
	fmt.Println(ok)
	// Output:
	// value1 true
	// false
}

func ExampleNewTyped() {
	c, _ := mussurana.New()
	defer c.Close()

	type user struct {
		Name string `json:"name"`
	}
	users := mussurana.NewTyped[user](c, mussurana.CompressedCodec(mussurana.JSONCodec()))
	users.Set("u1", user{Name: "ana"}, mussurana.NoExpiration, mussurana.DefaultPriority)

	u, ok, _ := users.Get("u1")
	fmt.Println(u.Name, ok)
	// Output: ana true
}

func TestInvalidConfigSurfacesAtConstruction(t *testing.T) {
	for _, opt := range []mussurana.Option{
		mussurana.WithMaxMemory(0),
		mussurana.WithMaxItems(-1),
		mussurana.WithCheckPeriod(0),
	} {
		if _, err := mussurana.New(opt); !errors.Is(err, mussurana.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	}
}

func TestIndependentInstances(t *testing.T) {
	a, err := mussurana.New(mussurana.WithName("a"))
	if err != nil {
		t.Fatalf("new a: %v", err)
	}
	defer a.Close()
	b, err := mussurana.New(mussurana.WithName("b"))
	if err != nil {
		t.Fatalf("new b: %v", err)
	}
	defer b.Close()

	a.Set("k", []byte("from-a"), mussurana.NoExpiration, 0)
	if _, ok := b.Get("k"); ok {
		t.Fatal("expected caches not to share entries")
	}
	_ = a.Close()
	if a.State() != mussurana.ReaperStopped || b.State() == mussurana.ReaperStopped {
		t.Fatalf("closing a must stop only a's reaper (a=%s, b=%s)", a.State(), b.State())
	}
}
