// Package config loads rule files.
//
// A rule file is JSON or YAML. It holds either a bare list of rules or a
// document with a "rules" list:
//
//	rules:
//	  - name: list users
//	    request:
//	      method: GET
//	      path: /users
//	    response:
//	      data: []
//	  - request:
//	      method: POST
//	      path: /users
//	      data: {name: Carlos}
//	    response:
//	      status: 201
//	      data: {id: 1}
//
// Every document is validated against an embedded JSON Schema before it is
// decoded, so structural mistakes are reported with the path of the offending
// field. Semantic checks (method tokens, path encoding, JSONPath syntax) are
// left to the engine at install time.
//
// Files are loaded individually with LoadFromFile or in bulk with LoadGlob:
//
//	rules, err := config.LoadGlob("testdata/**/*.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = e.Install(rules)
package config
