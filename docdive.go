// Package docdive provides live documentation search over external
// documentation websites. It fans a natural-language query out across
// per-site retrievers, fetches the selected documents on demand, and
// normalizes them into clean markdown suitable for LLM context windows.
// There is no crawler and no persistent index: everything is retrieved
// at question time and held only in a TTL-bounded in-memory cache.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or documentation
// source (e.g., apple/, hws/, gemini/, cache/).
package docdive
