package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoring Ledger API",
        "description": "Attendance, tuition and commission ledger on top of the online scheduler",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Attendance", "description": "Roster and attendance ledger"},
        {"name": "Tuition", "description": "Per-subject pricing and monthly payment tracking"},
        {"name": "Commission", "description": "Teacher commission rates and payouts"},
        {"name": "Holidays", "description": "Holiday calendar"},
        {"name": "Hidden", "description": "Hidden roster rows"},
        {"name": "Admin", "description": "Admin password verification"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check including database ping",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/attendance/students": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Resolved student-subject roster",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/monthly": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Every attendance record of a month",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark a cell present, absent or ta",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Remove a cell's attendance record",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "integer", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "subject", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No record for that day"}
                }
            }
        },
        "/api/attendance/toggle": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Advance a cell through present, absent, ta, noshow, cleared",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CycleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/summary": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Per-student present and absent counts for a month",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/summary/{studentId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "One student's counts for a month",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "integer", "required": true},
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/notes": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Month cell notes",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Upsert a month cell's note",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetNoteRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/class-counts": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Class counts grouped by teacher over a date range",
                "parameters": [
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true},
                    {"name": "statuses", "in": "query", "type": "string"},
                    {"name": "teacher", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/admin/verify": {
            "post": {
                "tags": ["Admin"],
                "summary": "Check the shared admin password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PasswordBody"}}
                ],
                "responses": {
                    "200": {"description": "Valid"},
                    "401": {"description": "Wrong password"}
                }
            }
        },
        "/api/attendance/holidays": {
            "get": {
                "tags": ["Holidays"],
                "summary": "Every holiday",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Holidays"],
                "summary": "Register a holiday (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddHolidayBody"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Wrong password"}
                }
            }
        },
        "/api/attendance/holidays/monthly": {
            "get": {
                "tags": ["Holidays"],
                "summary": "One month's holidays",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/holidays/{id}": {
            "delete": {
                "tags": ["Holidays"],
                "summary": "Remove a holiday (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PasswordBody"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No such holiday"}
                }
            }
        },
        "/api/attendance/subjects": {
            "get": {
                "tags": ["Tuition"],
                "summary": "Distinct subjects on live assignments",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/tuition/subjects": {
            "get": {
                "tags": ["Tuition"],
                "summary": "Monthly tuition rows per student-subject",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Tuition"],
                "summary": "Set a student-subject tuition rate (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPriceBody"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Wrong password"}
                }
            },
            "delete": {
                "tags": ["Tuition"],
                "summary": "Remove a student-subject pair and its payment history (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectBody"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Pair not found"}
                }
            }
        },
        "/api/attendance/tuition/subjects/summary": {
            "get": {
                "tags": ["Tuition"],
                "summary": "Monthly tuition totals grouped by currency",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/tuition/subjects/export": {
            "get": {
                "tags": ["Tuition"],
                "summary": "Download the month's tuition table as CSV or PDF",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/api/attendance/tuition/subjects/payment/toggle": {
            "post": {
                "tags": ["Tuition"],
                "summary": "Flip a month's tuition payment state (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TogglePaymentBody"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/attendance/tuition/subjects/add": {
            "post": {
                "tags": ["Tuition"],
                "summary": "Register a student-subject pair for billing (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectBody"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/attendance/commission": {
            "get": {
                "tags": ["Commission"],
                "summary": "Monthly commission rows per primary teacher and student",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Commission"],
                "summary": "Set a teacher-student commission rate (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetCommissionBody"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/attendance/commission/teachers": {
            "get": {
                "tags": ["Commission"],
                "summary": "Active teachers sorted by name",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/commission/summary": {
            "get": {
                "tags": ["Commission"],
                "summary": "Monthly commission totals grouped by currency",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/attendance/commission/export": {
            "get": {
                "tags": ["Commission"],
                "summary": "Download the month's commission table as CSV or PDF",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/api/attendance/commission/payment/toggle": {
            "post": {
                "tags": ["Commission"],
                "summary": "Flip a month's commission payout state (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleTeacherPaymentBody"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/attendance/hidden": {
            "get": {
                "tags": ["Hidden"],
                "summary": "Hidden roster rows with resolved names",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Hidden"],
                "summary": "Hide a roster row from a month onward",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HideRowRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Hidden"],
                "summary": "Restore a hidden roster row",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnhideRowRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Row is not hidden"}
                }
            }
        }
    },
    "definitions": {
        "SetStatusRequest": {
            "type": "object",
            "required": ["student_id", "date", "status"],
            "properties": {
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "date": {"type": "string", "example": "2026-08-28"},
                "status": {"type": "string", "enum": ["present", "absent", "ta"]}
            }
        },
        "CycleRequest": {
            "type": "object",
            "required": ["student_id", "date"],
            "properties": {
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "SetNoteRequest": {
            "type": "object",
            "required": ["student_id", "year", "month"],
            "properties": {
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "note": {"type": "string"}
            }
        },
        "PasswordBody": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        },
        "AddHolidayBody": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "password": {"type": "string"},
                "date": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "SetPriceBody": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "password": {"type": "string"},
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "price_per_class": {"type": "number"},
                "currency": {"type": "string", "enum": ["PHP", "KRW"]}
            }
        },
        "TogglePaymentBody": {
            "type": "object",
            "required": ["student_id", "year", "month"],
            "properties": {
                "password": {"type": "string"},
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "SubjectBody": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "password": {"type": "string"},
                "student_id": {"type": "integer"},
                "subject": {"type": "string"}
            }
        },
        "SetCommissionBody": {
            "type": "object",
            "required": ["teacher_id", "student_id"],
            "properties": {
                "password": {"type": "string"},
                "teacher_id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "commission_per_class": {"type": "number"},
                "currency": {"type": "string", "enum": ["PHP", "KRW"]}
            }
        },
        "ToggleTeacherPaymentBody": {
            "type": "object",
            "required": ["teacher_id", "student_id", "year", "month"],
            "properties": {
                "password": {"type": "string"},
                "teacher_id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "year": {"type": "integer"},
                "month": {"type": "integer"}
            }
        },
        "HideRowRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "integer"},
                "subject": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"}
            }
        },
        "UnhideRowRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "integer"},
                "subject": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
