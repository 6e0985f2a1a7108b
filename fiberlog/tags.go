package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Tag names
const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagMethod  = "method"
	TagPath    = "path"
	TagUA      = "user_agent"
	TagLatency = "latency"
	TagBody    = "body"
	TagResBody = "response_body"
	RequestID  = "request_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag извлекает значение тега из контекста запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var tagFunctions = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		return rid
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if fn, ok := tagFunctions[tag]; ok {
			ftm[tag] = fn
		}
	}
	return ftm
}
