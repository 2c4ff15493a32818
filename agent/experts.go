package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/docs"
	"github.com/etnz/rpametrics/renderer"
	"github.com/etnz/rpametrics/server"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools, they are at your service and keep the context
			of your previous questions.

			The user runs robotic process automation bots and wants to understand their activity:
			executions, success rates, hours of manual work saved and cost savings.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
			Answer in markdown, quote figures exactly as the experts gave them.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search, for industry
// context and benchmarks.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert of robotic process automation.
		Ask the Researcher about industry benchmarks, typical automation rates, RPA vendors
		and any recent news that helps putting the user's figures in context.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in robotic process automation. You leverage Google Search to
			ground your assertions and you cite your sources.
			`),
		},
	}
}

// NewAnalyst returns the expert that reads the run data of the loader.
func NewAnalyst(loader rpametrics.Loader, opts ...rpametrics.Option) *Expert {
	lib := Tools(loader, opts...)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's RPA run data and computes the
		dashboard metrics: KPIs, trends per period, breakdowns per process, area, application and machine,
		top performers and functional savings per fiscal year. Any selection of years, months, business area,
		process or machine can be asked.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the analyst of the user's robotic process automation metrics.
			Use the Tools to compute the figures, never estimate them yourself.
			Call Options first when you are unsure of the exact name of an area, a process or a machine.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions the analyst can call.
func Tools(loader rpametrics.Loader, opts ...rpametrics.Option) []Function {
	dashboard := func(name, desc string, render func(*rpametrics.Dashboard) (string, error)) Function {
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name:        name,
				Description: desc,
				Parameters:  selectionSchema,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				d, err := load(ctx, loader, args, opts)
				if err != nil {
					return failure(id, name, err)
				}
				out, err := render(d)
				if err != nil {
					return failure(id, name, err)
				}
				return success(id, name, out)
			},
		}
	}
	return []Function{
		dashboard("KPIs", "Headline metrics of the selection: executions, hours saved, cost savings, success rate, active processes and the data summary.",
			func(d *rpametrics.Dashboard) (string, error) { return renderer.SummaryMarkdown(d), nil }),
		dashboard("Trend", "Executions, success rate, hours and savings per period (daily, weekly, monthly, quarterly or yearly) with cumulative savings.",
			func(d *rpametrics.Dashboard) (string, error) { return renderer.TrendMarkdown(d), nil }),
		dashboard("Breakdown", "Top processes, hours per business area, savings per application, hours per machine and top performers.",
			func(d *rpametrics.Dashboard) (string, error) { return renderer.BreakdownMarkdown(d), nil }),
		dashboard("Options", "The years, months, business areas, processes and machines available for the selection, as JSON.",
			func(d *rpametrics.Dashboard) (string, error) {
				data, err := json.Marshal(d.Options)
				return string(data), err
			}),
		dashboard("FunctionalSavings", "Savings per functional area and fiscal year, with year over year growth. The selection does not apply.",
			func(d *rpametrics.Dashboard) (string, error) {
				if d.FunctionalSavings == nil {
					return "", errors.New("no functional savings file is configured")
				}
				return renderer.SavingsMarkdown(d.FunctionalSavings, d.Currency), nil
			}),
		Topic,
	}
}

var selectionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"year":    {Type: genai.TypeString, Description: "Comma separated run years, e.g. 2023,2024. Every year when empty."},
		"month":   {Type: genai.TypeString, Description: "Comma separated months, by name or number, e.g. Jan,Feb. Every month when empty."},
		"area":    {Type: genai.TypeString, Description: "Business area, every area when empty."},
		"process": {Type: genai.TypeString, Description: "Process name, every process when empty."},
		"machine": {Type: genai.TypeString, Description: "Machine name, every machine when empty."},
		"period":  {Type: genai.TypeString, Description: "Trend period: daily, weekly, monthly, quarterly or yearly. Monthly by default."},
	},
}

// selection reads the filter and the period from the call args.
func selection(args map[string]any) (rpametrics.Filter, rpametrics.Period, error) {
	q := url.Values{}
	for k, v := range args {
		if v != nil {
			q.Set(k, fmt.Sprint(v))
		}
	}
	return server.ParseQuery(q)
}

func load(ctx context.Context, loader rpametrics.Loader, args map[string]any, opts []rpametrics.Option) (*rpametrics.Dashboard, error) {
	f, p, err := selection(args)
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load the run data: %w", err)
	}
	return rpametrics.NewDashboard(ds, f, p, opts...), nil
}

// Topic returns a documentation topic.
var Topic = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "Topic",
		Description: "Documentation of the rpa tool. Topic names are listed in the readme topic.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {Type: genai.TypeString, Description: "The topic, readme by default."},
			},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown documentation."},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		topic, _ := args["topic"].(string)
		if topic == "" {
			topic = docs.Readme
		}
		doc, err := docs.GetTopic(topic)
		if err != nil {
			return failure(id, "Topic", err)
		}
		return success(id, "Topic", doc)
	},
}
