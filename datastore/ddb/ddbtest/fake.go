/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddbtest provides an in-memory fake of the DynamoDB calls used by package ddb.
package ddbtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Fake keeps items keyed by their string PK and SK attributes. Scan ignores filter
// expressions and pages through every item in key order.
type Fake struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int
	calls    map[string]int
	err      error
}

// New creates an empty Fake
func New() *Fake {
	return &Fake{
		items: make(map[string]map[string]types.AttributeValue),
		calls: make(map[string]int),
	}
}

// WithPageSize limits how many items each Scan page returns
func (f *Fake) WithPageSize(n int) *Fake {
	f.pageSize = n
	return f
}

// WithError makes every call fail with err until it is reset with nil
func (f *Fake) WithError(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// Calls returns how many times op was called
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Item returns the stored item for the given key attributes
func (f *Fake) Item(pk, sk string) (map[string]types.AttributeValue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[pk+"|"+sk]
	return item, ok
}

// PutRaw stores an item as is
func (f *Fake) PutRaw(item map[string]types.AttributeValue) error {
	id, err := itemID(item)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id] = item
	return nil
}

func (f *Fake) GetItem(_ context.Context, params *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetItem"]++
	if f.err != nil {
		return nil, f.err
	}

	id, err := itemID(params.Key)
	if err != nil {
		return nil, err
	}
	return &sdk.GetItemOutput{Item: copyItem(f.items[id])}, nil
}

func (f *Fake) PutItem(_ context.Context, params *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["PutItem"]++
	if f.err != nil {
		return nil, f.err
	}

	id, err := itemID(params.Item)
	if err != nil {
		return nil, err
	}
	f.items[id] = copyItem(params.Item)
	return &sdk.PutItemOutput{}, nil
}

func (f *Fake) DeleteItem(_ context.Context, params *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteItem"]++
	if f.err != nil {
		return nil, f.err
	}

	id, err := itemID(params.Key)
	if err != nil {
		return nil, err
	}
	delete(f.items, id)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *Fake) Scan(_ context.Context, params *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Scan"]++
	if f.err != nil {
		return nil, f.err
	}

	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := 0
	if params.ExclusiveStartKey != nil {
		after, err := itemID(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start = sort.SearchStrings(ids, after)
		if start < len(ids) && ids[start] == after {
			start++
		}
	}

	end := len(ids)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &sdk.ScanOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, copyItem(f.items[id]))
	}
	if end < len(ids) {
		last := f.items[ids[end-1]]
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": last["PK"], "SK": last["SK"]}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func itemID(item map[string]types.AttributeValue) (string, error) {
	pk, ok := item["PK"].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("ddbtest: item has no string PK")
	}
	sk, ok := item["SK"].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("ddbtest: item has no string SK")
	}
	return pk.Value + "|" + sk.Value, nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
