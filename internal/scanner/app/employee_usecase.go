package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

const (
	employeesPath   = "/angajati_serverside_list/"
	employeesFields = "id,nume,prenume,marca,telefon,imagine"

	msgErrFetchEmployees = "failed to fetch employees"

	errCtxFetchingEmployees = "fetching employees"
)

// EmployeeUseCase ищет сотрудников постранично.
type EmployeeUseCase struct {
	client *session.Client
}

// NewEmployeeUseCase создает сценарий поиска сотрудников.
func NewEmployeeUseCase(client *session.Client) *EmployeeUseCase {
	return &EmployeeUseCase{client: client}
}

// FetchPage возвращает страницу сотрудников. hasMore истинно, если страница заполнена целиком.
func (e *EmployeeUseCase) FetchPage(ctx context.Context, query dto.EmployeeQuery) (*entities.EmployeePage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = dto.DefaultPageSize
	}
	offset := max(query.Offset, 0)

	params := url.Values{
		"fields": {employeesFields},
		"search": {query.Search},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	resp, err := e.client.Request(ctx, http.MethodGet, employeesPath, session.WithQuery(params))
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrFetchEmployees, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingEmployees, err)
	}

	var page dto.EmployeeListResponse
	if err := session.DecodeJSON(resp, &page); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrFetchEmployees, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingEmployees, err)
	}

	items := make([]entities.Employee, 0, len(page.Results))
	for _, row := range page.Results {
		items = append(items, e.toEmployee(row))
	}

	return &entities.EmployeePage{
		Items:      items,
		HasMore:    len(items) == limit,
		NextOffset: offset + len(items),
	}, nil
}

func (e *EmployeeUseCase) toEmployee(row dto.EmployeeRow) entities.Employee {
	name := strings.TrimSpace(strings.Join(nonEmpty(row.Nume, row.Prenume), " "))
	if name == "" {
		name = row.Username
	}
	if name == "" {
		name = strconv.FormatInt(row.ID, 10)
	}

	var image string
	if row.Imagine != nil {
		image = absoluteURL(e.client.BaseURL(), *row.Imagine)
	}

	return entities.Employee{
		ID:       row.ID,
		Nume:     row.Nume,
		Prenume:  row.Prenume,
		Name:     name,
		Marca:    row.Marca,
		Telefon:  row.Telefon,
		ImageURL: image,
	}
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
