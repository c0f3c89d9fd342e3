package socketrpc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"
)

// Client implements model.CatalogQuerier over a Unix domain socket using JSON-RPC 2.0.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	nextID  int
	scanner *bufio.Scanner
	encoder *json.Encoder
}

var _ model.CatalogQuerier = (*Client)(nil)

// Dial connects to the socket RPC server at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("socketrpc: dial: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	return &Client{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call performs a JSON-RPC call and unmarshals the result into dest.
func (c *Client) call(method string, params any, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("socketrpc: marshal params: %w", err)
	}

	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  paramsData,
	}

	c.conn.SetDeadline(time.Now().Add(30 * time.Second))
	defer c.conn.SetDeadline(time.Time{})

	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("socketrpc: send: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("socketrpc: read: %w", err)
		}
		return errors.New("socketrpc: connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("socketrpc: unmarshal response: %w", err)
	}
	if resp.ID != id {
		return fmt.Errorf("socketrpc: response id %d does not match request %d", resp.ID, id)
	}

	if resp.Error != nil {
		if resp.Error.Code == codeNotFound {
			return catalog.ErrNotFound
		}
		return resp.Error
	}

	if dest != nil {
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("socketrpc: unmarshal result: %w", err)
		}
	}
	return nil
}

func (c *Client) products(method string, params any) ([]model.Product, error) {
	var result []model.Product
	err := c.call(method, params, &result)
	return result, err
}

func (c *Client) AllProducts() ([]model.Product, error) {
	return c.products("AllProducts", map[string]any{})
}

func (c *Client) Products(q model.ProductQuery) ([]model.Product, error) {
	return c.products("Products", map[string]any{"Query": q})
}

func (c *Client) Product(id int) (model.Product, error) {
	var result model.Product
	err := c.call("Product", map[string]any{"ID": id}, &result)
	return result, err
}

func (c *Client) Categories() ([]string, error) {
	var result []string
	err := c.call("Categories", map[string]any{}, &result)
	return result, err
}

func (c *Client) Featured() ([]model.Product, error) {
	return c.products("Featured", map[string]any{})
}

func (c *Client) Trending(limit int) ([]model.Product, error) {
	return c.products("Trending", map[string]any{"Limit": limit})
}

func (c *Client) Discounted(limit int) ([]model.Product, error) {
	return c.products("Discounted", map[string]any{"Limit": limit})
}
