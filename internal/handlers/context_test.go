package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func pageParamsFor(target string) (int, int) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return pageParams(c)
}

func TestPageParams_Defaults(t *testing.T) {
	page, limit := pageParamsFor("/")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestPageParams_Explicit(t *testing.T) {
	page, limit := pageParamsFor("/?page=3&limit=5")
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, limit)
}

func TestPageParams_GarbageFallsBackToDefaults(t *testing.T) {
	page, limit := pageParamsFor("/?page=abc&limit=2x")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestPageParams_OutOfRangeClamped(t *testing.T) {
	page, limit := pageParamsFor("/?page=-4&limit=500")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
