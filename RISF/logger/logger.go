// logger
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

var OutputMode *string // verbose, table or quiet
var User *string       // name of this user running this run
var Seed *int64        // Random number generator seed
var Dir = "."          // where the log file is written

const prefix = "RISF "

// Name of the log file for this run's seed
func FileName() string {
	var seed int64
	if Seed != nil {
		seed = *Seed
	}
	return filepath.Join(Dir, "log.RISF."+strconv.FormatInt(seed, 10))
}

// Is the console output mode verbose
func Verbose() bool {
	return OutputMode != nil && *OutputMode == "verbose"
}

// Printf writes to the console only in verbose mode
func Printf(format string, a ...interface{}) {
	if Verbose() {
		fmt.Printf(format, a...)
	}
}

func LogWriter(message string) {
	f, err := os.OpenFile(FileName(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Println(err)
		return
	}
	defer f.Close()

	who := ""
	if User != nil {
		who = "[" + *User + "] "
	}

	logger := log.New(f, prefix, log.LstdFlags)
	logger.Println(who + message)
}

func LogWriterf(format string, a ...interface{}) {
	LogWriter(fmt.Sprintf(format, a...))
}

func LogWriterFatal(message string) {
	LogWriter(message)

	if Verbose() {
		fmt.Println(message)
	} else {
		fmt.Fprintln(os.Stderr, message)
	}
	os.Exit(1)
}
