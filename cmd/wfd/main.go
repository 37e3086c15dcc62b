/* Copyright 2024 Statepath Authors
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// wfd hosts workflow machines behind a WebSocket ops protocol.
//
// Specs are YAML documents in a directory; machine states live in a
// bbolt file and survive restarts.
//
//	{"op":"create","id":"m1","spec":"article"}
//	{"op":"fire","id":"m1","event":"submit","args":[{"by":"alice"}]}
//	{"op":"state","id":"m1"}
package main

import (
	"context"
	"flag"
	"log"
)

func main() {

	var (
		dbFile   = flag.String("d", "wfd.db", "storage filename")
		specsDir = flag.String("s", "specs", "specs directory")
		port     = flag.String("p", ":8080", "address for the WebSocket listener")
	)

	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewService(ctx, *specsDir, *dbFile)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close(ctx) // ToDo: Check error.

	if err := s.WebSocketService(ctx, *port); err != nil {
		log.Fatal(err)
	}
}
