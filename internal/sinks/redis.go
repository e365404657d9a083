// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"integrate/internal/sweep"
)

// ListPusher abstracts the minimal surface we need from a Redis client:
// append values to a list and bound its lifetime.
type ListPusher interface {
	Push(ctx context.Context, key string, ttl time.Duration, values ...string) error
}

// GoRedisPusher implements ListPusher with github.com/redis/go-redis/v9. The
// RPUSH and EXPIRE go out in one MULTI/EXEC so a list never exists without
// its TTL.
type GoRedisPusher struct{ c *redis.Client }

func NewGoRedisPusher(addr string) *GoRedisPusher {
	return &GoRedisPusher{c: redis.NewClient(&redis.Options{Addr: addr})}
}

func (g *GoRedisPusher) Push(ctx context.Context, key string, ttl time.Duration, values ...string) error {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	_, err := g.c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, args...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (g *GoRedisPusher) Close() error { return g.c.Close() }

// LoggingPusher prints pushes instead of sending them, for runs without a
// Redis server.
type LoggingPusher struct{ Log logrus.FieldLogger }

func (p LoggingPusher) Push(ctx context.Context, key string, ttl time.Duration, values ...string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	for _, v := range values {
		p.Log.WithFields(logrus.Fields{"key": key, "ttl": ttl}).Infof("[redis-demo] RPUSH %s", v)
	}
	return nil
}

// RedisResultKey is the list holding every record of one run.
func RedisResultKey(prefix, runID string) string { return fmt.Sprintf("%s:%s", prefix, runID) }

// RedisSink pushes each record as a JSON Entry onto a per-run list as soon as
// it is emitted, so results of an aborted sweep are still collected.
type RedisSink struct {
	client ListPusher
	key    string
	runID  string
	ttl    time.Duration
}

// NewRedisSink returns a sink writing to RedisResultKey(prefix, runID). A
// non-positive ttl defaults to 24h.
func NewRedisSink(client ListPusher, prefix, runID string, ttl time.Duration) *RedisSink {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSink{client: client, key: RedisResultKey(prefix, runID), runID: runID, ttl: ttl}
}

func (s *RedisSink) Emit(ctx context.Context, r sweep.Record) error {
	b, err := json.Marshal(NewEntry(s.runID, r))
	if err != nil {
		return fmt.Errorf("marshal redis entry: %w", err)
	}
	if err := s.client.Push(ctx, s.key, s.ttl, string(b)); err != nil {
		return fmt.Errorf("redis rpush key=%s workers=%d: %w", s.key, r.Workers, err)
	}
	return nil
}

// Flush is a no-op: every Emit is already committed.
func (s *RedisSink) Flush(context.Context) error { return nil }

// Close releases the client if it holds a connection pool.
func (s *RedisSink) Close() error {
	if c, ok := s.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
