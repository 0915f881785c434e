// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

//go:build windows

package wmi

import (
	"context"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// nativeDispatcher issues the query on the calling OS thread. The handler
// has already initialized COM there under its negotiated threading model, so
// the dispatcher never initializes COM itself. The provider call cannot be
// aborted; the handler stops waiting for it when the deadline passes.
type nativeDispatcher struct{}

func (nativeDispatcher) Dispatch(ctx context.Context, q Query) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return execQuery(q)
}

func execQuery(q Query) ([]map[string]any, error) {
	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return nil, oleStatusError("CreateObject", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, oleStatusError("QueryInterface", err)
	}
	defer locator.Release()

	// nil server connects to the local machine
	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, q.Namespace)
	if err != nil {
		return nil, oleStatusError("ConnectServer", err)
	}
	service := serviceRaw.ToIDispatch()
	defer serviceRaw.Clear()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", q.WQL())
	if err != nil {
		return nil, oleStatusError("ExecQuery", err)
	}
	result := resultRaw.ToIDispatch()
	defer resultRaw.Clear()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return nil, oleStatusError("Count", err)
	}
	count := int(countVar.Val)
	_ = countVar.Clear()

	rows := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		row, err := readInstance(result, i, q.Fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readInstance(result *ole.IDispatch, index int, fields []string) (map[string]any, error) {
	itemRaw, err := oleutil.CallMethod(result, "ItemIndex", index)
	if err != nil {
		return nil, oleStatusError("ItemIndex", err)
	}
	item := itemRaw.ToIDispatch()
	defer itemRaw.Clear()

	row := make(map[string]any)
	if len(fields) > 0 {
		for _, name := range fields {
			prop, err := oleutil.GetProperty(item, name)
			if err != nil {
				// absent properties surface as nil in the projection
				continue
			}
			row[name] = prop.Value()
			_ = prop.Clear()
		}
		return row, nil
	}

	propsRaw, err := oleutil.GetProperty(item, "Properties_")
	if err != nil {
		return nil, oleStatusError("Properties_", err)
	}
	props := propsRaw.ToIDispatch()
	defer propsRaw.Clear()

	err = oleutil.ForEach(props, func(v *ole.VARIANT) error {
		p := v.ToIDispatch()
		nameVar, err := oleutil.GetProperty(p, "Name")
		if err != nil {
			return err
		}
		defer nameVar.Clear()
		valueVar, err := oleutil.GetProperty(p, "Value")
		if err != nil {
			return err
		}
		defer valueVar.Clear()
		row[nameVar.ToString()] = valueVar.Value()
		return nil
	})
	if err != nil {
		return nil, oleStatusError("Properties_", err)
	}
	return row, nil
}

func oleStatusError(op string, err error) error {
	hr := statusFromOle(err)
	return &StatusError{Op: op, Status: hr, Detail: fmt.Sprint(err)}
}
