package handlers

// @title HomeDesigns Gateway API
// @version 1.0
// @description Authenticated proxy in front of the HomeDesigns.AI perfect redesign API

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/hdai

// @tag.name redesign
// @tag.description Redesign job submission and status polling
