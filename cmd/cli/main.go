package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lexi-ai/internal/catalog"
	"lexi-ai/internal/config"
	"lexi-ai/internal/domain"
	"lexi-ai/internal/repository"
	"lexi-ai/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	profileRepo := repository.NewFileProfileRepository(cfg.DataDir)
	personaSvc := service.NewPersonaService(profileRepo, service.SystemClock, logger)
	recSvc := service.NewRecommendationService(logger)
	source := catalog.NewSampleCatalog()
	for _, category := range source.Categories() {
		recSvc.RegisterSource(category, source)
	}
	guardSvc := service.NewGuardrailsService(service.SystemClock, logger)
	assistant := service.NewAssistantService(personaSvc, recSvc, guardSvc, logger)

	printHeader()

	fmt.Print("Enter your user ID (or press Enter for 'demo_user'): ")
	userID, _ := reader.ReadString('\n')
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "demo_user"
	}
	fmt.Printf("\nInitializing Lexi for user: %s\n", userID)

	for {
		printMenu()
		fmt.Print("Your choice (1-6): ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch choice {
		case "1":
			learnPreferenceFlow(ctx, reader, assistant, userID)
		case "2":
			recommendationsFlow(ctx, reader, assistant, userID)
		case "3":
			decisionFlow(ctx, reader, assistant, userID)
		case "4":
			summaryFlow(ctx, assistant, userID)
		case "5":
			healthFlow(ctx, assistant, userID)
		case "6":
			fmt.Println("\nThank you for using Lexi!")
			fmt.Println("Remember: you're in control of your decisions.")
			os.Exit(0)
		default:
			fmt.Println("\nInvalid choice. Please enter 1-6.")
		}
	}
}

func printHeader() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  Lexi - Your Hyper-Personalized Assistant")
	fmt.Println("  Combating Decision Fatigue with Ethical AI")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

func printMenu() {
	fmt.Println("\nWhat would you like to do?")
	fmt.Println("  1. Learn a preference")
	fmt.Println("  2. Get recommendations")
	fmt.Println("  3. Combat decision fatigue")
	fmt.Println("  4. View persona summary")
	fmt.Println("  5. Check health status")
	fmt.Println("  6. Exit")
}

func learnPreferenceFlow(ctx context.Context, reader *bufio.Reader, assistant *service.AssistantService, userID string) {
	fmt.Println("\n--- Learn a Preference ---")
	category := readLine(reader, "Category (media/style/food): ")

	fmt.Println("\nTell me about something you like, dislike, or are neutral about:")
	item := domain.Item{}
	name := readLine(reader, "Item name: ")
	if name != "" {
		item["name"] = domain.StringValue(name)
	}

	fmt.Println("\nAdd attributes (press Enter without a name to finish):")
	for {
		key := readLine(reader, "  Attribute name (e.g., 'genre', 'style', 'type'): ")
		if key == "" {
			break
		}
		value := readLine(reader, fmt.Sprintf("  Value for '%s': ", key))
		if value != "" {
			item[key] = domain.StringValue(value)
		}
	}

	rating := readLine(reader, "\nRating (positive/negative/neutral): ")
	for {
		err := assistant.LearnPreference(ctx, userID, item, domain.Rating(strings.ToLower(rating)), category)
		if err == nil {
			fmt.Printf("\nLearned your %s preference for %s\n", strings.ToLower(rating), name)
			return
		}
		if !errors.Is(err, domain.ErrInvalidRating) {
			fmt.Printf("\nError saving preference: %v\n", err)
			return
		}
		rating = readLine(reader, "Please enter 'positive', 'negative', or 'neutral': ")
	}
}

func recommendationsFlow(ctx context.Context, reader *bufio.Reader, assistant *service.AssistantService, userID string) {
	fmt.Println("\n--- Get Recommendations ---")
	category := readLine(reader, "Category (media/style/food): ")

	recommendations, err := assistant.GetRecommendations(ctx, userID, category, service.DefaultRecommendationLimit)
	if err != nil {
		fmt.Printf("\nError generating recommendations: %v\n", err)
		return
	}
	if len(recommendations) == 0 {
		fmt.Println("\nI don't have enough information yet to make recommendations.")
		fmt.Println("Try teaching me some preferences first!")
		return
	}

	fmt.Printf("\nHere are my recommendations for %s:\n", category)
	for i, rec := range recommendations {
		fmt.Printf("\n%d. %s (score %.2f, confidence %s)\n", i+1, formatItem(rec.Item), rec.Score, rec.Confidence)
		fmt.Printf("   %s\n", rec.Reason)
	}
}

func decisionFlow(ctx context.Context, reader *bufio.Reader, assistant *service.AssistantService, userID string) {
	fmt.Println("\n--- Combat Decision Fatigue ---")
	fmt.Println("I'll help you narrow down your options.")
	fmt.Println()
	category := readLine(reader, "Category: ")
	count := readIntDefault(reader, "How many options do you have? ", 2)

	options := make([]domain.Item, 0, count)
	for i := 0; i < count; i++ {
		fmt.Printf("\nOption %d:\n", i+1)
		option := domain.Item{}
		name := readLine(reader, "  Name: ")
		if name != "" {
			option["name"] = domain.StringValue(name)
		}
		attr := readLine(reader, "  Key attribute (e.g., 'genre'): ")
		if attr != "" {
			value := readLine(reader, fmt.Sprintf("  Value for '%s': ", attr))
			if value != "" {
				option[attr] = domain.StringValue(value)
			}
		}
		options = append(options, option)
	}

	filtered := assistant.CombatDecisionFatigue(ctx, userID, category, options)

	fmt.Printf("\nReduced from %d to %d best matches:\n", len(options), len(filtered))
	for i, option := range filtered {
		fmt.Printf("\n%d. %s\n", i+1, formatItem(option.Option))
		fmt.Printf("   %s\n", option.Reasoning)
	}
}

func summaryFlow(ctx context.Context, assistant *service.AssistantService, userID string) {
	fmt.Println("\n--- Virtual Persona Summary ---")
	summary := assistant.PersonaSummary(ctx, userID)

	fmt.Printf("User ID: %s\n", summary.UserID)
	fmt.Printf("Preferences tracked: %d\n", summary.TotalPreferences)
	fmt.Printf("Total interactions: %d\n", summary.TotalInteractions)
	categories := "None yet"
	if len(summary.Categories) > 0 {
		categories = strings.Join(summary.Categories, ", ")
	}
	fmt.Printf("Categories: %s\n", categories)
	fmt.Printf("Created: %s\n", summary.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Last updated: %s\n", summary.LastUpdated.Format("2006-01-02 15:04:05"))
}

func healthFlow(ctx context.Context, assistant *service.AssistantService, userID string) {
	fmt.Println("\n--- Health Status ---")
	report := assistant.HealthReport(ctx, userID)

	fmt.Printf("Interactions today: %d/%d\n", report.UsageStatus.InteractionsToday, report.UsageStatus.Limit)
	fmt.Printf("Usage: %.1f%%\n", report.UsageStatus.PercentageUsed)

	if len(report.UsageStatus.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, warning := range report.UsageStatus.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}
	if report.BreakRecommended {
		fmt.Println("\nSuggestion: take a break!")
	}

	fmt.Println("\nHealth tips:")
	for _, tip := range report.HealthTips {
		fmt.Printf("  - %s\n", tip)
	}
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readIntDefault(reader *bufio.Reader, prompt string, def int) int {
	line := readLine(reader, prompt)
	if line == "" {
		return def
	}
	if v, err := strconv.Atoi(line); err == nil && v > 0 {
		return v
	}
	return def
}

// formatItem arma una descripción corta de un item para la terminal.
func formatItem(item domain.Item) string {
	for _, key := range []string{"name", "title", "item", "dish"} {
		if v, ok := item[key]; ok {
			return v.String()
		}
	}
	parts := make([]string, 0, len(item))
	for key, value := range item {
		parts = append(parts, fmt.Sprintf("%s=%s", key, value))
	}
	return strings.Join(parts, " ")
}
