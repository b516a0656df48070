package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mrchongyl/zus-chatbot/pkg/agent"
)

// Tool names the model selects between. The set is closed: it is assembled
// once at startup and validated by the registry.
const (
	ToolNameCalculator = "Calculator"
	ToolNameOutlets    = "ZUS_Outlets"
	ToolNameProducts   = "ZUS_Products"
)

type calculatorTool struct {
	service ICalculatorService
}

func NewCalculatorTool(service ICalculatorService) agent.Tool {
	return &calculatorTool{service: service}
}

func (t *calculatorTool) Name() string { return ToolNameCalculator }

func (t *calculatorTool) Description() string {
	return "Useful for performing mathematical calculations. Input should be a mathematical expression like '2+2' or '10*5/2'."
}

func (t *calculatorTool) Invoke(ctx context.Context, input string) (string, error) {
	res, err := t.service.Calculate(ctx, input)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(res.Result, 'f', -1, 64), nil
}

type outletsTool struct {
	service IOutletService
}

func NewOutletsTool(service IOutletService) agent.Tool {
	return &outletsTool{service: service}
}

func (t *outletsTool) Name() string { return ToolNameOutlets }

func (t *outletsTool) Description() string {
	return "Get information about ZUS Coffee outlet locations, directions and operation time. You can search by area/city name (e.g. 'Cheras', 'Kuala Lumpur'), opening hours, or general queries. Examples: 'outlets in Cheras', 'outlets open until 10 PM'."
}

func (t *outletsTool) Invoke(ctx context.Context, input string) (string, error) {
	res, err := t.service.Query(ctx, input)
	if err != nil {
		return "", err
	}
	if res.TotalResults == 0 {
		return fmt.Sprintf("No outlets found for: %s", input), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d outlet(s):\n", res.TotalResults)
	for _, row := range res.Results {
		b.WriteString("- ")
		b.WriteString(formatOutletRow(row))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// formatOutletRow renders a projected row without assuming which columns
// the translated statement selected.
func formatOutletRow(row map[string]interface{}) string {
	if name, ok := row["name"]; ok {
		parts := []string{fmt.Sprintf("%v", name)}
		for _, col := range []string{"address", "area", "state", "opening_time", "closing_time", "direction_url"} {
			if v, ok := row[col]; ok && v != nil {
				parts = append(parts, fmt.Sprintf("%v", v))
			}
		}
		return strings.Join(parts, ", ")
	}

	// Aggregates and partial projections: render key=value pairs.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, row[k]))
	}
	return strings.Join(parts, ", ")
}

type productsTool struct {
	service IProductService
	topK    int
}

func NewProductsTool(service IProductService, topK int) agent.Tool {
	return &productsTool{service: service, topK: topK}
}

func (t *productsTool) Name() string { return ToolNameProducts }

func (t *productsTool) Description() string {
	return "Search for ZUS Coffee drinkware products like tumblers, mugs, cups, etc. Returns product recommendations with details and pricing."
}

func (t *productsTool) Invoke(ctx context.Context, input string) (string, error) {
	res, err := t.service.Query(ctx, input, t.topK, true)
	if err != nil {
		return "", err
	}
	if res.TotalResults == 0 {
		return fmt.Sprintf("No drinkware products found for: %s", input), nil
	}
	return fmt.Sprintf("Product Search Results for '%s':\n\n[Summary: %s]\n", input, res.Summary), nil
}
