// Package manifest describes which config files each package contributes
// and turns that description into a merge plan.
//
// A manifest is a YAML or JSONC file listing packages in the order they
// should be registered, each with its per-group file lists and optional
// per-environment file lists, followed by substitutions that move a file
// reference from one package to another:
//
//	packages:
//	  - name: vendor/http
//	    groups:
//	      web: [config/web.php, config/routes.php]
//	    environments:
//	      prod:
//	        web: [config/web-prod.php]
//	  - name: /
//	    groups:
//	      params: [config/params.php]
//	replacements:
//	  - package: vendor/http
//	    group: web
//	    file: config/routes.php
//	    withPackage: /
//	    withFile: config/routes.php
//
// Build is the producer side of the merge plan: it walks the manifest and
// calls Add, AddMultiple and Replace on a fresh plan.
package manifest
