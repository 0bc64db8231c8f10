// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query turns the query string of a list request into a filtered,
// sorted, field-limited and paginated SQL SELECT.
//
// A request such as
//
//	GET /api/v1/tours?difficulty=easy&price[lt]=1500&sort=-price&fields=name,price&page=2&limit=10
//
// is first parsed into [Features] with [Parse] and then applied to a
// squirrel.SelectBuilder with [Features.Apply]. Field names are the JSON
// names of the resource and are resolved to columns through a [Schema];
// anything not declared in the schema is rejected.
package query
