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

// Package driver sequences tokenizer, parser, enumerator and renderer for
// one expression, translates all errors into messages and exit statuses and
// publishes the computed truth table.
package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/booltab/conf"
	"github.com/RedHatInsights/booltab/parser"
	"github.com/RedHatInsights/booltab/producer"
	"github.com/RedHatInsights/booltab/producer/disabled"
	"github.com/RedHatInsights/booltab/producer/kafka"
	"github.com/RedHatInsights/booltab/table"
	"github.com/RedHatInsights/booltab/token"
	"github.com/RedHatInsights/booltab/types"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusMissingExpression is returned when no expression is given
	ExitStatusMissingExpression
	// ExitStatusUnexpectedArgument is returned for more than one expression
	ExitStatusUnexpectedArgument
	// ExitStatusUnexpectedToken is returned for characters outside of
	// expression alphabet
	ExitStatusUnexpectedToken
	// ExitStatusUnmatchedBracket is returned for unbalanced parentheses
	ExitStatusUnmatchedBracket
	// ExitStatusStackOverflow is returned when expression exceeds capacity
	ExitStatusStackOverflow
	// ExitStatusMissingArgument is returned when operator has no operand
	ExitStatusMissingArgument
	// ExitStatusStackCorrupted is returned when expression leaves other than
	// one value on stack
	ExitStatusStackCorrupted
	// ExitStatusUnknownError is returned for any other failure
	ExitStatusUnknownError
	// ExitStatusTooManyVariables is returned when variable limit is exceeded
	ExitStatusTooManyVariables
	// ExitStatusNonSequentialVariables is returned in strict mode when
	// variables are not sequential letters
	ExitStatusNonSequentialVariables
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusKafkaBrokerError is for kafka broker connection establishment errors
	ExitStatusKafkaBrokerError
	// ExitStatusKafkaProducerError is for kafka event production failures
	ExitStatusKafkaProducerError
	// ExitStatusMetricsError is raised when prometheus metrics cannot be pushed
	ExitStatusMetricsError
)

// Messages
const (
	errorPrefix              = "error: "
	unknownErrorMessage      = "unknown error"
	operationFailedMessage   = "Operation failed"
	metricsPushFailedMessage = "Couldn't push prometheus metrics"
	expressionAttribute      = "expression"
	postfixAttribute         = "postfix"
	variablesAttribute       = "variables"
	rowsAttribute            = "rows"
)

// UsageMessage is printed after missing expression error
const UsageMessage = `usage: booltab [flags] EXPRESSION

  Computes the truth table of boolean expression for all possible values
  of its variables.

  Arguments:

    EXPRESSION    boolean expression; valid tokens are '(', ')', '~', '&',
                  '|' and variable names, single lower case letters [a-z].
                  Spaces are ignored. The k-th variable in order of first
                  appearance is shown in the k-th column.`

// ProducerFactory constructs producer used to publish reports
type ProducerFactory func(config *conf.ConfigStruct) (producer.Producer, error)

// NewProducer constructs Kafka producer when it is enabled in configuration,
// disabled producer otherwise
func NewProducer(config *conf.ConfigStruct) (producer.Producer, error) {
	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	if !brokerConfig.Enabled {
		log.Debug().Msg("Kafka producer is disabled")
		return &disabled.Producer{}, nil
	}

	kafkaProducer, err := kafka.New(config)
	if err != nil {
		ProducerSetupErrors.Inc()
		return nil, &KafkaBrokerError{Err: err}
	}
	return kafkaProducer, nil
}

// Compile tokenizes expression and converts it into postfix form
func Compile(expression string, capacity int) (infix, postfix token.Sequence, err error) {
	infix, err = token.Tokenize(expression, capacity)
	if err != nil {
		return nil, nil, err
	}

	postfix, err = parser.ToPostfix(infix, capacity)
	if err != nil {
		return nil, nil, err
	}
	return infix, postfix, nil
}

// expressionFromArgs checks that exactly one positional argument is given
func expressionFromArgs(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", &types.MissingExpressionError{}
	case 1:
		return args[0], nil
	default:
		return "", &types.UnexpectedArgumentError{Argument: args[1]}
	}
}

// Process computes truth table of the expression given in args and renders
// it to out. Rows rendered before a failure are flushed before the error is
// returned.
func Process(config conf.ConfigStruct, cliFlags types.CliFlags, args []string, out io.Writer) (*types.ReportMessage, error) {
	expression, err := expressionFromArgs(args)
	if err != nil {
		return nil, err
	}

	limits := conf.GetLimitsConfiguration(&config)
	outputConfig := conf.GetOutputConfiguration(&config)

	format := outputConfig.Format
	if cliFlags.OutputFormat != "" {
		format = cliFlags.OutputFormat
	}

	renderer, err := table.NewRenderer(format, out, outputConfig.Header)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	infix, postfix, err := Compile(expression, limits.MaxTokens)
	if err != nil {
		return nil, err
	}

	options := table.Options{
		MaxVariables:     limits.MaxVariables,
		StrictSequential: limits.StrictSequential,
		Capacity:         limits.MaxTokens,
	}

	names := table.DiscoverVariables(infix)
	if err := table.CheckVariables(names, options); err != nil {
		return nil, err
	}

	if cliFlags.Verbose {
		log.Info().
			Str(expressionAttribute, expression).
			Str(postfixAttribute, postfix.String()).
			Str(variablesAttribute, names.String()).
			Msg("Expression compiled")
	}

	// streamed rows are kept in memory only when the report is published
	_, streaming := renderer.(*table.TextRenderer)
	keepRows := !streaming || conf.GetKafkaBrokerConfiguration(&config).Enabled

	report := &types.ReportMessage{
		ID:         uuid.NewString(),
		Expression: expression,
		Variables:  make([]string, len(names)),
		Rows:       []types.Row{},
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	for i, name := range names {
		report.Variables[i] = string(name)
	}

	if err := renderer.Begin(expression, names); err != nil {
		return nil, err
	}

	_, err = table.Enumerate(infix, postfix, options, func(row types.Row) error {
		RowsEvaluated.Inc()
		if keepRows {
			report.Rows = append(report.Rows, row)
		}
		return renderer.Row(row)
	})
	if err != nil {
		if flushErr := renderer.Flush(); flushErr != nil {
			log.Err(flushErr).Msg(operationFailedMessage)
		}
		return nil, err
	}

	if err := renderer.End(report); err != nil {
		return nil, err
	}

	ExpressionsProcessed.Inc()
	log.Debug().
		Str(expressionAttribute, expression).
		Int(rowsAttribute, 1<<uint(len(names))).
		Msg("Truth table computed")
	return report, nil
}

// publishReport sends report serialized into JSON through the producer
func publishReport(notifier producer.Producer, report *types.ReportMessage) error {
	message, err := json.Marshal(report)
	if err != nil {
		return &KafkaProducerError{Err: err}
	}

	partition, offset, err := notifier.ProduceMessage(message)
	if err != nil {
		ReportPublishErrors.Inc()
		return &KafkaProducerError{Err: err}
	}

	ReportsPublished.Inc()
	log.Debug().
		Str("id", report.ID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Report published")
	return nil
}

func closeNotifier(notifier producer.Producer) {
	err := notifier.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
	}
}

// ExitStatus translates error into exit status and kind used as metrics
// label
func ExitStatus(err error) (int, string) {
	var (
		missingExpression      *types.MissingExpressionError
		unexpectedArgument     *types.UnexpectedArgumentError
		unexpectedToken        *types.UnexpectedTokenError
		unmatchedBracket       *types.UnmatchedBracketError
		stackOverflow          *types.StackOverflowError
		missingArgument        *types.MissingArgumentError
		stackCorrupted         *types.StackCorruptedError
		tooManyVariables       *types.TooManyVariablesError
		nonSequentialVariables *types.NonSequentialVariablesError
		configurationError     *ConfigurationError
		kafkaBrokerError       *KafkaBrokerError
		kafkaProducerError     *KafkaProducerError
		metricsError           *MetricsError
	)

	switch {
	case err == nil:
		return ExitStatusOK, ""
	case errors.As(err, &missingExpression):
		return ExitStatusMissingExpression, "missing_expression"
	case errors.As(err, &unexpectedArgument):
		return ExitStatusUnexpectedArgument, "unexpected_argument"
	case errors.As(err, &unexpectedToken):
		return ExitStatusUnexpectedToken, "unexpected_token"
	case errors.As(err, &unmatchedBracket):
		return ExitStatusUnmatchedBracket, "unmatched_bracket"
	case errors.As(err, &stackOverflow):
		return ExitStatusStackOverflow, "stack_overflow"
	case errors.As(err, &missingArgument):
		return ExitStatusMissingArgument, "missing_argument"
	case errors.As(err, &stackCorrupted):
		return ExitStatusStackCorrupted, "stack_corrupted"
	case errors.As(err, &tooManyVariables):
		return ExitStatusTooManyVariables, "too_many_variables"
	case errors.As(err, &nonSequentialVariables):
		return ExitStatusNonSequentialVariables, "non_sequential_variables"
	case errors.As(err, &configurationError):
		return ExitStatusConfiguration, "configuration"
	case errors.As(err, &kafkaBrokerError):
		return ExitStatusKafkaBrokerError, "kafka_broker"
	case errors.As(err, &kafkaProducerError):
		return ExitStatusKafkaProducerError, "kafka_producer"
	case errors.As(err, &metricsError):
		return ExitStatusMetricsError, "metrics"
	default:
		return ExitStatusUnknownError, "unknown"
	}
}

// ErrorMessage returns message printed for the error
func ErrorMessage(err error) string {
	status, _ := ExitStatus(err)
	switch status {
	case ExitStatusOK:
		return ""
	case ExitStatusUnknownError:
		return errorPrefix + unknownErrorMessage
	case ExitStatusMissingExpression:
		return errorPrefix + err.Error() + "\n\n" + UsageMessage
	default:
		return errorPrefix + err.Error()
	}
}

// reportError writes error message to stderr and returns exit status
func reportError(err error, stderr io.Writer) int {
	status, kind := ExitStatus(err)
	ExpressionErrors.WithLabelValues(kind).Inc()

	log.Debug().Err(err).Int("status", status).Msg(operationFailedMessage)
	if _, writeErr := fmt.Fprintln(stderr, strings.TrimRight(ErrorMessage(err), "\n")); writeErr != nil {
		log.Err(writeErr).Msg(operationFailedMessage)
	}
	return status
}

// Run function is entry point to the driver. It computes truth table of the
// only expression from args, renders it to stdout, publishes it when Kafka
// producer is enabled and returns exit status.
func Run(config conf.ConfigStruct, cliFlags types.CliFlags, args []string, stdout, stderr io.Writer) int {
	return RunWithProducer(config, cliFlags, args, stdout, stderr, NewProducer)
}

// RunWithProducer is like Run, but producer is constructed by the given
// factory. The producer is constructed only after the truth table was
// computed.
func RunWithProducer(config conf.ConfigStruct, cliFlags types.CliFlags, args []string, stdout, stderr io.Writer, newProducer ProducerFactory) int {
	metricsConfig := conf.GetMetricsConfiguration(&config)
	registerMetrics(metricsConfig)

	// failed pushes the failure counters too, push error does not change
	// the exit status
	failed := func(err error) int {
		status := reportError(err, stderr)
		if metricsConfig.GatewayURL != "" {
			if pushErr := pushMetrics(metricsConfig); pushErr != nil {
				log.Err(pushErr).Int("status", status).Msg(metricsPushFailedMessage)
			}
		}
		return status
	}

	report, err := Process(config, cliFlags, args, stdout)
	if err != nil {
		return failed(err)
	}

	notifier, err := newProducer(&config)
	if err != nil {
		return failed(err)
	}

	err = publishReport(notifier, report)
	closeNotifier(notifier)
	if err != nil {
		return failed(err)
	}

	if metricsConfig.GatewayURL != "" {
		if err := pushMetrics(metricsConfig); err != nil {
			return reportError(err, stderr)
		}
	}

	return ExitStatusOK
}
