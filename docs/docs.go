// Package docs holds the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/tags": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains tags",
                        "schema": {
                            "$ref": "#/definitions/controllers.TagsSuccessResponse"
                        }
                    }
                },
                "summary": "List tags",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/tags/{tagID}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains the tag",
                        "schema": {
                            "$ref": "#/definitions/controllers.TagSuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Get a tag",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tag ID",
                        "name": "tagID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/categories": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains categories",
                        "schema": {
                            "$ref": "#/definitions/controllers.CategoriesSuccessResponse"
                        }
                    }
                },
                "summary": "List categories",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/categories/{categoryID}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains the category",
                        "schema": {
                            "$ref": "#/definitions/controllers.CategorySuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Get a category",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Category ID",
                        "name": "categoryID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/events/{eventID}/rsvp": {
            "post": {
                "responses": {
                    "201": {
                        "description": "RSVP recorded",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "200": {
                        "description": "already RSVP'd",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request (event canceled)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "RSVP to an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "RSVP withdrawn",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request (not RSVP'd)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Withdraw an RSVP",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/events/{eventID}/attendees": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains users",
                        "schema": {
                            "$ref": "#/definitions/controllers.UsersSuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List attendees of an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/my-events/rsvp": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains events",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventsSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List events I RSVP'd to",
                "tags": [
                    "me"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/events/{eventID}/like": {
            "post": {
                "responses": {
                    "201": {
                        "description": "event liked",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "200": {
                        "description": "already liked",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Like an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "event unliked",
                        "schema": {
                            "$ref": "#/definitions/controllers.MessageSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request (not liked)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Unlike an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/my-events/liked": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains events",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventsSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List events I liked",
                "tags": [
                    "me"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/events/{eventID}/comments": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains comments, oldest first",
                        "schema": {
                            "$ref": "#/definitions/controllers.CommentsSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List comments on an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "data contains the comment",
                        "schema": {
                            "$ref": "#/definitions/controllers.CommentSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Comment on an event",
                "tags": [
                    "engagement"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Comment",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.AddCommentRequest"
                        }
                    }
                ]
            }
        },
        "/events/{eventID}/comments/{commentID}": {
            "delete": {
                "responses": {
                    "204": {
                        "description": "no content"
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "403": {
                        "description": "error.code: forbidden (not author)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Delete a comment",
                "description": "Only the comment author can delete it.",
                "tags": [
                    "engagement"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Comment ID",
                        "name": "commentID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/events/{eventID}/reviews": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains reviews, newest first",
                        "schema": {
                            "$ref": "#/definitions/controllers.ReviewsSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List reviews of an event",
                "tags": [
                    "engagement"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "data contains the review",
                        "schema": {
                            "$ref": "#/definitions/controllers.ReviewSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Review an event",
                "tags": [
                    "engagement"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Review (rating 1-5, content optional)",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.SubmitReviewRequest"
                        }
                    }
                ]
            }
        },
        "/events/{eventID}/stats": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains counters",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventStatsSuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Engagement statistics for an event",
                "tags": [
                    "stats"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/events/stats": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains counters",
                        "schema": {
                            "$ref": "#/definitions/controllers.GlobalStatsSuccessResponse"
                        }
                    }
                },
                "summary": "Platform-wide statistics",
                "tags": [
                    "stats"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/events": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains events and pagination",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventListSuccessResponse"
                        }
                    },
                    "429": {
                        "description": "error.code: too_many_requests",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Search events",
                "description": "Lists events matching the optional filters, ordered by start date. Results are cached for a short time, so recent changes may take up to a minute to appear.",
                "tags": [
                    "events"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Substring of title or description (case-insensitive)",
                        "name": "query",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Exact start date (YYYY-MM-DD)",
                        "name": "date",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Category name (case-insensitive)",
                        "name": "category",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Substring of location (case-insensitive)",
                        "name": "location",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated tag names; matches any",
                        "name": "tags",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "int",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "int",
                        "description": "Page size (default 10, max 100)",
                        "name": "page_size",
                        "in": "query",
                        "required": false
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "data contains the created event",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Create an event",
                "description": "Creates an event owned by the caller. Category and tags are created by name when missing. Followers of the caller are notified by email.",
                "tags": [
                    "events"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Event data",
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CreateEventRequest"
                        }
                    }
                ]
            }
        },
        "/events/{eventID}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains the event",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventSuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Get an event by ID",
                "tags": [
                    "events"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "data contains the updated event",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "403": {
                        "description": "error.code: forbidden (not organizer)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Update an event",
                "description": "Partially updates an event. Only the organizer can update. Passing tags replaces the tag set.",
                "tags": [
                    "events"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update (all optional)",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.UpdateEventRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "no content"
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "403": {
                        "description": "error.code: forbidden (not organizer)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Delete an event",
                "description": "Only the organizer can delete.",
                "tags": [
                    "events"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/my-events": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains events",
                        "schema": {
                            "$ref": "#/definitions/controllers.EventsSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List my events",
                "description": "Events organized by the caller, newest first.",
                "tags": [
                    "me"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/auth/register": {
            "post": {
                "responses": {
                    "201": {
                        "description": "data contains the created user",
                        "schema": {
                            "$ref": "#/definitions/controllers.UserSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "409": {
                        "description": "error.code: conflict (email already in use)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Register a new user",
                "description": "Create a user with email, password (at least 8 characters) and an optional username. A welcome email is sent.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Registration data",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.RegisterRequest"
                        }
                    }
                ]
            }
        },
        "/auth/login": {
            "post": {
                "responses": {
                    "200": {
                        "description": "data contains token, token_type, and user",
                        "schema": {
                            "$ref": "#/definitions/controllers.LoginSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Log in",
                "description": "Authenticate with email and password. Returns a bearer JWT and the user.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.LoginRequest"
                        }
                    }
                ]
            }
        },
        "/users/me": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains the user",
                        "schema": {
                            "$ref": "#/definitions/controllers.UserSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Get current user",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "data contains the updated user",
                        "schema": {
                            "$ref": "#/definitions/controllers.UserSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "500": {
                        "description": "error.code: internal_error",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Update current user",
                "description": "Update the caller's username, bio and address. Omitted fields are unchanged.",
                "tags": [
                    "users"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Fields to update (all optional)",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.UpdateProfileRequest"
                        }
                    }
                ]
            }
        },
        "/users/{userID}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains the user",
                        "schema": {
                            "$ref": "#/definitions/controllers.UserSuccessResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Get a user profile",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "userID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/users/{userID}/follow": {
            "post": {
                "responses": {
                    "200": {
                        "description": "data reports the new follow state",
                        "schema": {
                            "$ref": "#/definitions/controllers.FollowSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request (cannot follow yourself)",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "Follow or unfollow a user",
                "description": "Follows the user, or unfollows when the caller already follows them.",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID to follow",
                        "name": "userID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/users/me/followers": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains users",
                        "schema": {
                            "$ref": "#/definitions/controllers.UsersSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List my followers",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/users/me/followings": {
            "get": {
                "responses": {
                    "200": {
                        "description": "data contains users",
                        "schema": {
                            "$ref": "#/definitions/controllers.UsersSuccessResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "summary": "List users I follow",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "controllers.AddCommentRequest": {
            "type": "object"
        },
        "controllers.CategoriesSuccessResponse": {
            "type": "object"
        },
        "controllers.CategorySuccessResponse": {
            "type": "object"
        },
        "controllers.CommentSuccessResponse": {
            "type": "object"
        },
        "controllers.CommentsSuccessResponse": {
            "type": "object"
        },
        "controllers.CreateEventRequest": {
            "type": "object"
        },
        "controllers.EventListSuccessResponse": {
            "type": "object"
        },
        "controllers.EventStatsSuccessResponse": {
            "type": "object"
        },
        "controllers.EventSuccessResponse": {
            "type": "object"
        },
        "controllers.EventsSuccessResponse": {
            "type": "object"
        },
        "controllers.FollowSuccessResponse": {
            "type": "object"
        },
        "controllers.GlobalStatsSuccessResponse": {
            "type": "object"
        },
        "controllers.LoginRequest": {
            "type": "object"
        },
        "controllers.LoginSuccessResponse": {
            "type": "object"
        },
        "controllers.MessageSuccessResponse": {
            "type": "object"
        },
        "controllers.RegisterRequest": {
            "type": "object"
        },
        "controllers.ReviewSuccessResponse": {
            "type": "object"
        },
        "controllers.ReviewsSuccessResponse": {
            "type": "object"
        },
        "controllers.SubmitReviewRequest": {
            "type": "object"
        },
        "controllers.TagSuccessResponse": {
            "type": "object"
        },
        "controllers.TagsSuccessResponse": {
            "type": "object"
        },
        "controllers.UpdateEventRequest": {
            "type": "object"
        },
        "controllers.UpdateProfileRequest": {
            "type": "object"
        },
        "controllers.UserSuccessResponse": {
            "type": "object"
        },
        "controllers.UsersSuccessResponse": {
            "type": "object"
        },
        "helpers.APIResponse": {
            "type": "object"
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EventHub API",
	Description:      "Event management backend: events, search, RSVPs, likes, comments, reviews and follows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
