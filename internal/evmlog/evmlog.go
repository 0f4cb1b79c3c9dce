// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package evmlog is the structured-logging entry point used by
// cmd/evmrun: a single *logrus.Entry carrying
// whatever per-transaction fields (tx hash, depth) a caller wants
// attached, the same "Entry field on the owning struct" shape the
// teacher's p2p.Server uses for its own logger.
package evmlog

import "github.com/sirupsen/logrus"

// New returns a *logrus.Entry at the given level with no fields attached.
// Callers narrow it further with WithField/WithFields per call site.
func New(level logrus.Level) *logrus.Entry {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logrus.NewEntry(l)
}

// ParseLevel wraps logrus.ParseLevel so callers don't need to import
// logrus just to turn a --log-level flag value into a Level.
func ParseLevel(s string) (logrus.Level, error) {
	return logrus.ParseLevel(s)
}

// Discard returns an Entry that drops everything, for callers (tests,
// library use) that don't want evmrun's default stderr logging.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return logrus.NewEntry(l)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
