// Package config resolves the installer configuration.
//
// Values come from three layers, later layers winning:
//
//  1. Built-in defaults (Default), adjusted to the detected platform.
//  2. An optional Lua file, found via ConfigPath.
//  3. Environment variables (HYPRISM_INSTALL_API_URL, HYPRISM_INSTALL_LOG_LEVEL).
//
// The API token is only ever taken from HYPRISM_INSTALL_GITHUB_TOKEN or
// GITHUB_TOKEN so it does not end up in a config file.
//
// # Lua file
//
// The file assigns a global "installer" table. Every field is optional:
//
//	installer = {
//	    owner = "yyyumeniku",
//	    repo = "HyPrism",
//	    install_dir = "~/Games/HyPrism",
//	    asset = {
//	        suffix = platform.package_suffix,
//	        arch = platform.is_arm64 and "aarch64" or "x86_64",
//	    },
//	    shortcut = {
//	        name = "HyPrism",
//	        categories = { "Game", "ActionGame" },
//	    },
//	}
//
// The file runs in a sandboxed gopher-lua VM: os, io, debug and all code
// loading functions are removed, and a read-only "platform" table
// describing the host is injected before the file runs.
package config
