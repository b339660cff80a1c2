package jobwire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Result is the uniform response envelope returned by every backend
// endpoint: {success, message, data, errors}.
type Result[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

func decode[T any](body []byte) (Result[T], error) {
	var res Result[T]
	if len(body) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return res, fmt.Errorf("decoding response envelope: %w", err)
	}

	return res, nil
}

func getDecoded[T any](ctx context.Context, c *Client, path string, query url.Values) (Result[T], error) {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return Result[T]{}, err
	}

	return decode[T](body)
}

func postDecoded[T any](ctx context.Context, c *Client, path string, reqBody any) (Result[T], error) {
	body, err := c.Post(ctx, path, reqBody)
	if err != nil {
		return Result[T]{}, err
	}

	return decode[T](body)
}

func putDecoded[T any](ctx context.Context, c *Client, path string, reqBody any) (Result[T], error) {
	body, err := c.Put(ctx, path, reqBody)
	if err != nil {
		return Result[T]{}, err
	}

	return decode[T](body)
}

func deleteDecoded[T any](ctx context.Context, c *Client, path string) (Result[T], error) {
	body, err := c.Delete(ctx, path)
	if err != nil {
		return Result[T]{}, err
	}

	return decode[T](body)
}
