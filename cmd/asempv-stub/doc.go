// Command asempv-stub serves an in-memory copy of the ASEMPV backend for local
// development. Data comes from a YAML fixture file or is generated.
//
// Usage
//
//	asempv-stub [--addr 127.0.0.1:8080] [--fixtures fixtures.yml] [--inverters 60]
//
// The generated data set has one account, demo/demo. All state is held in
// memory and lost on exit. Request logs go to stderr as JSON.
package main
