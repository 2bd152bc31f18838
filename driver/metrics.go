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

// File metrics contains all metrics that needs to be exposed to Prometheus
// and indirectly to Grafana.

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/booltab/conf"
	"github.com/RedHatInsights/booltab/utils"
)

// Metrics names
const (
	ExpressionsProcessedName = "expressions_processed"
	ExpressionErrorsName     = "expression_errors"
	RowsEvaluatedName        = "rows_evaluated"
	ProducerSetupErrorsName  = "producer_setup_errors"
	ReportsPublishedName     = "reports_published"
	ReportPublishErrorsName  = "report_publish_errors"
)

// Metrics helps
const (
	ExpressionsProcessedHelp = "The total number of expressions whose truth table was computed"
	ExpressionErrorsHelp     = "The total number of refused expressions by kind of error"
	RowsEvaluatedHelp        = "The total number of evaluated truth table rows"
	ProducerSetupErrorsHelp  = "The total number of errors when setting up Kafka producer"
	ReportsPublishedHelp     = "The total number of reports published to Kafka"
	ReportPublishErrorsHelp  = "The total number of reports that could not be published to Kafka"
)

// label used to distinguish expression errors
const errorKindLabel = "kind"

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// ExpressionsProcessed shows number of expressions whose truth table was
// computed
var ExpressionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: ExpressionsProcessedName,
	Help: ExpressionsProcessedHelp,
})

// ExpressionErrors shows number of refused expressions by kind of error
var ExpressionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: ExpressionErrorsName,
	Help: ExpressionErrorsHelp,
}, []string{errorKindLabel})

// RowsEvaluated shows number of evaluated truth table rows
var RowsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
	Name: RowsEvaluatedName,
	Help: RowsEvaluatedHelp,
})

// ProducerSetupErrors shows number of errors when setting up Kafka producer
var ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerSetupErrorsName,
	Help: ProducerSetupErrorsHelp,
})

// ReportsPublished shows number of reports sent to the configured Kafka topic
var ReportsPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: ReportsPublishedName,
	Help: ReportsPublishedHelp,
})

// ReportPublishErrors shows number of reports not sent because of a Kafka
// producer error
var ReportPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ReportPublishErrorsName,
	Help: ReportPublishErrorsHelp,
})

// AddMetricsWithNamespace register the desired metrics using a given namespace
func AddMetricsWithNamespace(namespace string) {
	// Unregister all metrics and registrer them again
	prometheus.Unregister(ExpressionsProcessed)
	prometheus.Unregister(ExpressionErrors)
	prometheus.Unregister(RowsEvaluated)
	prometheus.Unregister(ProducerSetupErrors)
	prometheus.Unregister(ReportsPublished)
	prometheus.Unregister(ReportPublishErrors)

	ExpressionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ExpressionsProcessedName,
		Help:      ExpressionsProcessedHelp,
	})

	ExpressionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ExpressionErrorsName,
		Help:      ExpressionErrorsHelp,
	}, []string{errorKindLabel})

	RowsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      RowsEvaluatedName,
		Help:      RowsEvaluatedHelp,
	})

	ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ProducerSetupErrorsName,
		Help:      ProducerSetupErrorsHelp,
	})

	ReportsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ReportsPublishedName,
		Help:      ReportsPublishedHelp,
	})

	ReportPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ReportPublishErrorsName,
		Help:      ReportPublishErrorsHelp,
	})
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway
func PushMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	return push.New(utils.SetHTTPPrefix(metricsConf.GatewayURL), metricsConf.Job).
		Collector(ExpressionsProcessed).
		Collector(ExpressionErrors).
		Collector(RowsEvaluated).
		Collector(ProducerSetupErrors).
		Collector(ReportsPublished).
		Collector(ReportPublishErrors).
		Client(&client).
		Push()
}

// pushMetrics pushes metrics and repeats the push configured number of times
// when gateway refuses it
func pushMetrics(metricsConf conf.MetricsConfiguration) error {
	err := PushMetrics(metricsConf)
	if err == nil {
		log.Info().Msg("Metrics pushed successfully")
		return nil
	}

	log.Err(err).Msg(metricsPushFailedMessage)
	if metricsConf.RetryAfter == 0 || metricsConf.Retries == 0 {
		return &MetricsError{Err: err}
	}

	for i := metricsConf.Retries; i > 0; i-- {
		time.Sleep(metricsConf.RetryAfter)
		log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
		err = PushMetrics(metricsConf)
		if err == nil {
			log.Info().Msg("Metrics pushed successfully")
			return nil
		}
		log.Err(err).Msg(metricsPushFailedMessage)
	}
	return &MetricsError{Err: err}
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespace(metricsConfig.Namespace)
	}
}
