// Package telemetry bootstraps OpenTelemetry export for the commission board
// binaries.
//
// SetupProvider installs OTLP/gRPC trace and metric pipelines. The instruments
// recorded on every load live in the metrics subpackage, which carries no
// exporter dependencies and is safe to link into the browser build.
package telemetry
