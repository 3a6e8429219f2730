package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Veraticus/money-tracker/internal/model"
)

// ListCategories returns the default and custom categories of the current user.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a custom category.
func (c *Client) CreateCategory(ctx context.Context, draft model.CategoryDraft) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", draft, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListTransactions returns the user's transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", draft, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction applies patch to the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), patch, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

// Stats returns the backend-computed totals and category breakdown.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := c.do(ctx, http.MethodGet, "/transactions/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
