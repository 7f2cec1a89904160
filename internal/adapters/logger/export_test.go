// export_test.go exports private functions for white-box testing.
package logger

// FormatErrorChain exports the private error chain formatter for testing.
var FormatErrorChain = formatErrorChain
