// Package logger provides structured zerolog logging for the babelink
// command host and CLI.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("ocr")
//	log.Info("text extracted", logger.Fields(logger.FieldTool, "tesseract"))
package logger
