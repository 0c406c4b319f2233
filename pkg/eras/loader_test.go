package eras

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// applyUntil polls Apply until a result lands or the deadline passes.
func applyUntil(t *testing.T, l *Loader, mat *Material) (string, error) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if era, err := l.Apply(mat); era != "" {
			return era, err
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no loader result before deadline")
	return "", nil
}

func TestLoadShowsPlaceholderImmediately(t *testing.T) {
	l := NewLoader(time.Second)
	mat := NewMaterial()
	mat.SetColor(FallbackColor)

	l.Load(Modern, "res:modern", mat)

	// Before any Apply the surface is the placeholder, no map.
	if mat.Color() != PlaceholderColor {
		t.Errorf("color = %v, want placeholder", mat.Color())
	}
	if mat.Texture() != nil {
		t.Error("texture installed before fetch completed")
	}
	applyUntil(t, l, mat)
}

func TestLoadProceduralSucceeds(t *testing.T) {
	l := NewLoader(time.Second)
	mat := NewMaterial()

	l.Load(Formation, "res:formation", mat)
	era, err := applyUntil(t, l, mat)
	if era != Formation {
		t.Errorf("applied era = %q, want formation", era)
	}
	if err != nil {
		t.Errorf("err = %v, want nil on success", err)
	}
	if mat.Texture() == nil {
		t.Fatal("no texture installed on success")
	}
}

func TestLoadFailureInstallsFallback(t *testing.T) {
	l := NewLoader(time.Second)
	mat := NewMaterial()

	l.Load(Ancient, "/nonexistent/era.png", mat)
	_, err := applyUntil(t, l, mat)

	if err == nil {
		t.Error("err = nil, want the fetch failure surfaced")
	}
	if mat.Texture() != nil {
		t.Error("texture installed on failure")
	}
	if mat.Color() != FallbackColor {
		t.Errorf("color = %v, want fallback blue", mat.Color())
	}
}

func TestLoadHTTPFailureInstallsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(time.Second)
	mat := NewMaterial()

	l.Load(Modern, srv.URL+"/earth.png", mat)
	_, err := applyUntil(t, l, mat)

	if err == nil {
		t.Error("err = nil, want the fetch failure surfaced")
	}
	if mat.Color() != FallbackColor || mat.Texture() != nil {
		t.Errorf("material = (%v, %v), want fallback color", mat.Color(), mat.Texture())
	}
}

func TestStaleCompletionDiscarded(t *testing.T) {
	l := NewLoader(time.Second)
	mat := NewMaterial()

	// First load fails fast; the second supersedes it before Apply.
	// Latest request wins: the failure must never clobber the texture.
	l.Load(Ancient, "/nonexistent/era.png", mat)
	l.Load(Dinosaurs, "res:dinosaurs", mat)

	if era, err := applyUntil(t, l, mat); era != Dinosaurs || err != nil {
		t.Fatalf("applied = (%q, %v), want dinosaurs with nil err", era, err)
	}
	if mat.Texture() == nil {
		t.Fatal("no texture after superseding load")
	}

	// Give the stale failure time to arrive, then drain again.
	time.Sleep(50 * time.Millisecond)
	l.Apply(mat)
	if mat.Texture() == nil {
		t.Error("stale failure overwrote the newer texture")
	}
}
