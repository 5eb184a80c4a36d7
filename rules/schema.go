package rules

const rulesSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "influxdb-warner rules",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": { "$ref": "#/definitions/database" },
  "definitions": {
    "scalar": {
      "type": ["string", "number"]
    },
    "stringOrList": {
      "oneOf": [
        { "$ref": "#/definitions/scalar" },
        {
          "type": "array",
          "minItems": 1,
          "items": { "$ref": "#/definitions/scalar" }
        }
      ]
    },
    "database": {
      "type": "object",
      "required": ["host", "measurement"],
      "additionalProperties": false,
      "properties": {
        "protocol": { "type": "string", "enum": ["http", "https"] },
        "host": { "type": "string", "minLength": 1 },
        "port": { "type": "integer", "minimum": 1, "maximum": 65535 },
        "user": { "type": "string" },
        "pass": { "type": "string" },
        "measurement": {
          "type": "object",
          "minProperties": 1,
          "additionalProperties": {
            "type": "array",
            "items": { "$ref": "#/definitions/rule" }
          }
        }
      }
    },
    "rule": {
      "type": "object",
      "required": ["check"],
      "additionalProperties": false,
      "properties": {
        "check": { "$ref": "#/definitions/stringOrList" },
        "text": { "$ref": "#/definitions/stringOrList" },
        "time": { "$ref": "#/definitions/stringOrList" },
        "day": { "$ref": "#/definitions/stringOrList" },
        "start": { "type": "string" },
        "end": { "type": "string" },
        "func": { "$ref": "#/definitions/stringOrList" },
        "group": { "$ref": "#/definitions/stringOrList" },
        "where": { "$ref": "#/definitions/stringOrList" },
        "pass": { "type": "boolean" },
        "field": { "type": "string", "minLength": 1 }
      }
    }
  }
}`
