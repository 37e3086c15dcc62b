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

package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketService serves the ops protocol at /api/websocket: each
// text message is one Op as JSON, answered with one Result.
func (s *Service) WebSocketService(ctx context.Context, port string) error {

	var upgrader = websocket.Upgrader{} // use default options

	api := func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Service.WebSocketService connection from %s", r.RemoteAddr)

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error", err)
			return
		}
		defer c.Close()

		for {
			if ctx.Err() != nil {
				return
			}

			_, bs, err := c.ReadMessage()
			if err != nil {
				log.Println("read error", err)
				return
			}

			var op Op
			var result *Result
			if err := json.Unmarshal(bs, &op); err != nil {
				result = &Result{Err: "bad op: " + err.Error()}
			} else {
				result = s.Do(ctx, &op)
			}

			js, err := json.Marshal(result)
			if err != nil {
				log.Printf("marshal error %v on %#v", err, result)
				continue
			}
			if err = c.WriteMessage(websocket.TextMessage, js); err != nil {
				log.Println("write error", err)
				return
			}
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/websocket", api)

	log.Printf("Service.WebSocketService listening on %s", port)
	return http.ListenAndServe(port, mux)
}
