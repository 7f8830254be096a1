// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalogtest serves a fixed portal dataset over httptest for tests.
package catalogtest

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture returns the raw bytes of a fixture file (for example "list.json").
func Fixture(name string) []byte {
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return data
}

// Server is a fake portal backed by the embedded fixtures.
type Server struct {
	*httptest.Server

	// Hits counts every request received.
	Hits atomic.Int64

	// Status, when non-zero, is returned for every request instead of data.
	Status atomic.Int32
}

// NewServer starts a fake portal. Known detail slugs are those with a
// detail_<slug>.json fixture; everything else is a 404.
func NewServer() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.Hits.Add(1)
	if status := s.Status.Load(); status != 0 {
		w.WriteHeader(int(status))
		return
	}

	var name string
	switch {
	case r.URL.Path == "/software/categories/":
		name = "categories.json"
	case r.URL.Path == "/software/list/":
		name = "list.json"
	case strings.HasPrefix(r.URL.Path, "/software/detail/"):
		slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/software/detail/"), "/")
		name = "detail_" + slug + ".json"
	default:
		http.NotFound(w, r)
		return
	}

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
