package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Seeds the catalog of a running API instance with a small starter data set
// through the public HTTP endpoints.

type category struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type ingredient struct {
	Name       string `json:"name"`
	Slug       string `json:"slug,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

type recipeIngredient struct {
	IngredientID string `json:"ingredientId"`
	Type         string `json:"type"`
}

type recipe struct {
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	Instructions  string             `json:"instructions"`
	CategoryIDs   []string           `json:"categoryIds"`
	IngredientIDs []recipeIngredient `json:"ingredientIds"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	baseURL := flag.String("base-url", "http://localhost:3000", "API base URL")
	flag.Parse()

	categoryIDs := map[string]string{}
	for _, c := range []category{
		{Title: "Vegetables", Slug: "vegetables"},
		{Title: "Meat", Slug: "meat"},
		{Title: "Dairy", Slug: "dairy"},
		{Title: "Main Dishes", Slug: "main-dishes"},
	} {
		id, err := postForID(*baseURL+"/categories", c, true)
		if err != nil {
			log.Fatalf("[Seed] Failed to create category %q: %v", c.Title, err)
		}
		categoryIDs[c.Slug] = id
		log.Printf("[Seed] Category %q -> %s", c.Title, id)
	}

	ingredientIDs := map[string]string{}
	for _, i := range []ingredient{
		{Name: "Tomato", Slug: "tomato", CategoryID: categoryIDs["vegetables"]},
		{Name: "Onion", Slug: "onion", CategoryID: categoryIDs["vegetables"]},
		{Name: "Chicken Breast", Slug: "chicken-breast", CategoryID: categoryIDs["meat"]},
		{Name: "Mozzarella", Slug: "mozzarella", CategoryID: categoryIDs["dairy"]},
		{Name: "Olive Oil", Slug: "olive-oil"},
	} {
		id, err := postForID(*baseURL+"/ingredients", i, true)
		if err != nil {
			log.Fatalf("[Seed] Failed to create ingredient %q: %v", i.Name, err)
		}
		ingredientIDs[i.Name] = id
		log.Printf("[Seed] Ingredient %q -> %s", i.Name, id)
	}

	for _, r := range []recipe{
		{
			Title:        "Tomato Chicken Skillet",
			Description:  "Pan-seared chicken simmered in tomato and onion.",
			Instructions: "Sear the chicken, add chopped tomato and onion, simmer for 20 minutes.",
			CategoryIDs:  []string{categoryIDs["main-dishes"]},
			IngredientIDs: []recipeIngredient{
				{IngredientID: ingredientIDs["Chicken Breast"], Type: "MAIN"},
				{IngredientID: ingredientIDs["Tomato"], Type: "MAIN"},
				{IngredientID: ingredientIDs["Onion"], Type: "ADDITIONAL"},
			},
		},
		{
			Title:        "Caprese Salad",
			Description:  "Sliced tomato and mozzarella with olive oil.",
			Instructions: "Slice the tomato and mozzarella, layer them, drizzle with olive oil.",
			CategoryIDs:  []string{categoryIDs["main-dishes"]},
			IngredientIDs: []recipeIngredient{
				{IngredientID: ingredientIDs["Tomato"], Type: "MAIN"},
				{IngredientID: ingredientIDs["Mozzarella"], Type: "MAIN"},
				{IngredientID: ingredientIDs["Olive Oil"], Type: "ADDITIONAL"},
			},
		},
	} {
		id, err := postForID(*baseURL+"/recipes", r, false)
		if err != nil {
			log.Fatalf("[Seed] Failed to create recipe %q: %v", r.Title, err)
		}
		log.Printf("[Seed] Recipe %q -> %s", r.Title, id)
	}

	log.Println("[Seed] Done")
}

// postForID creates a resource and returns its id. Wrapped endpoints nest the
// entity under "data"; the recipe endpoint returns the entity directly.
func postForID(url string, payload interface{}, wrapped bool) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}

	entity := raw
	if wrapped {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return "", err
		}
		entity = env.Data
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(entity, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}
