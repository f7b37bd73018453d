package builtin

import (
	"context"
	"encoding/json"

	"inspector/internal/review/ports"
)

// platformPlan is one subscription tier of the hosting platform, used by the
// pricing role as a cost baseline for pay-per-usage actors.
type platformPlan struct {
	Name               string            `json:"name"`
	Cost               string            `json:"cost"`
	PrepaidUsage       string            `json:"prepaid_usage"`
	ComputeUnitPricing string            `json:"compute_unit_pricing"`
	ActorRAM           string            `json:"actor_ram"`
	MaxConcurrentRuns  string            `json:"max_concurrent_runs"`
	SupportLevel       string            `json:"support_level"`
	ProxyAccess        map[string]string `json:"proxy_access,omitempty"`
}

var platformPlans = []platformPlan{
	{
		Name: "Free", Cost: "$0 per month", PrepaidUsage: "$5",
		ComputeUnitPricing: "$0.4 per CU", ActorRAM: "8 GB",
		MaxConcurrentRuns: "25", SupportLevel: "Community support",
		ProxyAccess: map[string]string{
			"residential_proxies": "$8 per GB",
			"datacenter_proxies":  "5 IPs included",
			"serps_proxy":         "$2.5 per 1,000 SERPs",
		},
	},
	{
		Name: "Starter", Cost: "$49 per month", PrepaidUsage: "$49",
		ComputeUnitPricing: "$0.4 per CU", ActorRAM: "32 GB",
		MaxConcurrentRuns: "32", SupportLevel: "Chat support",
		ProxyAccess: map[string]string{
			"residential_proxies": "$8 per GB",
			"datacenter_proxies":  "30 IPs included; additional IPs at $1 per IP",
			"serps_proxy":         "$2.5 per 1,000 SERPs",
		},
	},
	{
		Name: "Scale", Cost: "$199 per month", PrepaidUsage: "$199",
		ComputeUnitPricing: "$0.3 per CU", ActorRAM: "128 GB",
		MaxConcurrentRuns: "128", SupportLevel: "Priority chat support",
		ProxyAccess: map[string]string{
			"residential_proxies": "$7.5 per GB",
			"datacenter_proxies":  "200 IPs included; additional IPs at $0.8 per IP",
			"serps_proxy":         "$2 per 1,000 SERPs",
		},
	},
	{
		Name: "Business", Cost: "$999 per month", PrepaidUsage: "$999",
		ComputeUnitPricing: "$0.25 per CU", ActorRAM: "256 GB",
		MaxConcurrentRuns: "256", SupportLevel: "Dedicated account manager",
		ProxyAccess: map[string]string{
			"residential_proxies": "$7 per GB",
			"datacenter_proxies":  "500 IPs included; additional IPs at $0.6 per IP",
			"serps_proxy":         "$1.7 per 1,000 SERPs",
		},
	},
	{
		Name: "Enterprise", Cost: "Custom pricing", PrepaidUsage: "Custom",
		ComputeUnitPricing: "Custom", ActorRAM: "Custom",
		MaxConcurrentRuns: "Custom", SupportLevel: "Service Level Agreement (SLA) with custom contract",
	},
}

type platformPricing struct{}

// NewPlatformPricing returns the tool listing the platform's subscription
// plans for pay-per-usage cost comparison.
func NewPlatformPricing() ports.ToolExecutor {
	return &platformPricing{}
}

func (t *platformPricing) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name:        "get_platform_pricing_plans",
		Description: "Get pricing plans of the Apify platform for pay-per-usage cost estimation.",
		Parameters: ports.ParameterSchema{
			Type:       "object",
			Properties: map[string]ports.Property{},
		},
	}
}

func (t *platformPricing) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	content, err := json.MarshalIndent(platformPlans, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: string(content)}, nil
}
