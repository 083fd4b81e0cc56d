// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logger wraps zap to provide a global sugared logger with a console
// encoder, level parsing and context helpers.
//
// Commands put the logger into their context and library code extracts it
// from there, so a bench run logs with its run id attached.
package logger
