/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package driver

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/booltab/conf"
)

// gateway is a fake push gateway that refuses the given number of pushes
type gateway struct {
	mutex         sync.Mutex
	pushes        int
	failures      int
	authorization string
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.authorization = r.Header.Get("Authorization")
	w.Header().Set("Content-Type", `text/plain; charset=utf-8`)
	if g.pushes < g.failures {
		w.WriteHeader(http.StatusBadGateway)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	g.pushes++
}

func (g *gateway) count() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.pushes
}

// TestAddMetricsWithNamespace function checks the basic behaviour of
// function AddMetricsWithNamespace from `metrics.go`
func TestAddMetricsWithNamespace(t *testing.T) {
	// add all metrics into the namespace "foobar"
	AddMetricsWithNamespace("foobar")

	// check the registration
	assert.NotNil(t, ExpressionsProcessed)
	assert.NotNil(t, ExpressionErrors)
	assert.NotNil(t, RowsEvaluated)
	assert.NotNil(t, ProducerSetupErrors)
	assert.NotNil(t, ReportsPublished)
	assert.NotNil(t, ReportPublishErrors)

	// registration can be repeated
	AddMetricsWithNamespace("foobar")
	assert.NotNil(t, ExpressionsProcessed)
}

// TestPushMetrics checks push to gateway that accepts metrics
func TestPushMetrics(t *testing.T) {
	g := &gateway{}
	testServer := httptest.NewServer(g)
	defer testServer.Close()

	err := PushMetrics(conf.MetricsConfiguration{
		Job:              "booltab",
		GatewayURL:       testServer.URL,
		GatewayAuthToken: "token",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, g.count())
	assert.Equal(t, "Basic token", g.authorization)
}

// TestPushMetricsWithoutToken checks that no authorization header is sent
// without token
func TestPushMetricsWithoutToken(t *testing.T) {
	g := &gateway{}
	testServer := httptest.NewServer(g)
	defer testServer.Close()

	err := PushMetrics(conf.MetricsConfiguration{
		Job:        "booltab",
		GatewayURL: testServer.URL,
	})
	assert.NoError(t, err)
	assert.Empty(t, g.authorization)
}

// TestPushMetricsGatewayFailingWithRetriesThenOk checks that push is
// repeated until gateway accepts it
func TestPushMetricsGatewayFailingWithRetriesThenOk(t *testing.T) {
	g := &gateway{failures: 3}
	testServer := httptest.NewServer(g)
	defer testServer.Close()

	err := pushMetrics(conf.MetricsConfiguration{
		Job:        "booltab",
		GatewayURL: testServer.URL,
		RetryAfter: 10 * time.Millisecond,
		Retries:    10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, g.count())
}

// TestPushMetricsGatewayFailingRetriesExhausted checks that error is
// returned when all retries were refused
func TestPushMetricsGatewayFailingRetriesExhausted(t *testing.T) {
	g := &gateway{failures: 100}
	testServer := httptest.NewServer(g)
	defer testServer.Close()

	err := pushMetrics(conf.MetricsConfiguration{
		Job:        "booltab",
		GatewayURL: testServer.URL,
		RetryAfter: 10 * time.Millisecond,
		Retries:    2,
	})
	assert.Error(t, err)
	assert.IsType(t, &MetricsError{}, err)
	assert.Equal(t, 3, g.count())
}

// TestPushMetricsGatewayFailingNoRetries checks that push is not repeated
// when retries are not configured
func TestPushMetricsGatewayFailingNoRetries(t *testing.T) {
	g := &gateway{failures: 1}
	testServer := httptest.NewServer(g)
	defer testServer.Close()

	err := pushMetrics(conf.MetricsConfiguration{
		Job:        "booltab",
		GatewayURL: testServer.URL,
	})
	assert.Error(t, err)
	assert.Equal(t, 1, g.count())
}

// TestRegisterMetrics checks that metrics are registered in namespace only
// when namespace is configured
func TestRegisterMetrics(t *testing.T) {
	before := ExpressionsProcessed
	registerMetrics(conf.MetricsConfiguration{})
	assert.Same(t, before, ExpressionsProcessed)

	registerMetrics(conf.MetricsConfiguration{Namespace: "booltab_test"})
	assert.NotSame(t, before, ExpressionsProcessed)
}
